package jobkorea

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobko-engine/internal/domain"
	"jobko-engine/internal/scrape/util"
)

const detailPathPrefix = "/Recruit/GI_Read/"

// ResolveJobURL turns the heterogeneous link encodings on a listing card into
// one absolute URL. Tiers, first match wins:
//
//  1. a.card-wrap href
//  2. a.card-wrap data-linkurl (when href is a script no-op)
//  3. div.description a, then div.company .name a
//  4. first valid a[href] anywhere in the node
//  5. a.card-wrap data-gno -> synthesized detail URL
//  6. li data-match JSON, key "gno" -> synthesized detail URL
//  7. li dmp-collection JSON, key "recruitNo" -> synthesized detail URL
//  8. the "No URL" sentinel
//
// Malformed JSON at tiers 6-7 counts as a miss, never an error.
func ResolveJobURL(node *goquery.Selection, base string) string {
	card := node.Find("a.card-wrap").First()
	if card.Length() > 0 {
		if href := strings.TrimSpace(card.AttrOr("href", "")); href != "" && !util.IsPseudoHref(href) {
			return util.FixURL(href, base)
		}
		if dlink := strings.TrimSpace(card.AttrOr("data-linkurl", "")); dlink != "" && !util.IsPseudoHref(dlink) {
			return util.FixURL(dlink, base)
		}
	}

	for _, sel := range []string{"div.description a", "div.company .name a"} {
		if href := firstValidHref(node.Find(sel)); href != "" {
			return util.FixURL(href, base)
		}
	}
	if href := firstValidHref(node.Find("a[href]")); href != "" {
		return util.FixURL(href, base)
	}

	if card.Length() > 0 {
		if gno := strings.TrimSpace(card.AttrOr("data-gno", "")); gno != "" {
			return util.FixURL(detailPathPrefix+gno, base)
		}
	}
	if id := listingIDFromJSON(node.AttrOr("data-match", ""), "gno"); id != "" {
		return util.FixURL(detailPathPrefix+id, base)
	}
	if id := listingIDFromJSON(node.AttrOr("dmp-collection", ""), "recruitNo"); id != "" {
		return util.FixURL(detailPathPrefix+id, base)
	}

	return domain.NoURL
}

// firstValidHref returns the first navigable href in document order: not
// blank, not a script pseudo-link, and either absolute or rooted.
func firstValidHref(anchors *goquery.Selection) string {
	found := ""
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || util.IsPseudoHref(href) {
			return true
		}
		low := strings.ToLower(href)
		if strings.HasPrefix(low, "http") || strings.HasPrefix(href, "/") {
			found = href
			return false
		}
		return true
	})
	return found
}

// listingIDFromJSON digs a listing id out of an HTML-escaped JSON attribute.
// The id arrives as either a string or a number depending on page version.
func listingIDFromJSON(raw, key string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(html.UnescapeString(raw)), &obj); err != nil {
		return ""
	}
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}

package jobkorea

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var quotedLiteral = regexp.MustCompile(`'([^']*)'`)

// CompanyFromScrapHandler pulls the company name out of the scrap button's
// inline onclick handler. The handler's last quoted argument carries a
// "_company_title" payload, so this is the cheap render-independent source;
// an empty return means the caller should fall back to the detail page.
func CompanyFromScrapHandler(node *goquery.Selection) string {
	btn := node.Find("button.btnScrap").First()
	if btn.Length() == 0 {
		return ""
	}
	literals := quotedLiteral.FindAllStringSubmatch(btn.AttrOr("onclick", ""), -1)
	if len(literals) == 0 {
		return ""
	}

	payload := html.UnescapeString(literals[len(literals)-1][1])
	payload = strings.NewReplacer("<BR>", " ", "&lt;BR&gt;", " ").Replace(payload)
	payload = strings.TrimSpace(strings.TrimLeft(payload, "_"))

	company, _, found := strings.Cut(payload, "_")
	if !found {
		return ""
	}
	return strings.TrimSpace(company)
}

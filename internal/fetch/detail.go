package fetch

import (
	"context"
	"strings"

	"jobko-engine/internal/scrape/util"
)

// companySelectors are tried in order on a posting's detail page; the meta
// tag is last because og:site_name is occasionally the portal, not the
// employer.
var companySelectors = []string{
	".coName a",
	".coTit a",
	"a.coLink",
	".company .name",
}

// CompanyFromDetail fetches a posting's detail page and extracts the company
// name. It is the phase-2 fallback of the company resolver: every failure,
// transport or parse, degrades to "" and is never propagated.
func (c *Client) CompanyFromDetail(ctx context.Context, jobURL string) string {
	doc, err := c.GetDocument(ctx, jobURL)
	if err != nil {
		return ""
	}

	for _, sel := range companySelectors {
		if v := util.NodeText(doc.Find(sel).First()); v != "" {
			return v
		}
	}
	return strings.TrimSpace(doc.Find(`meta[property="og:site_name"]`).First().AttrOr("content", ""))
}

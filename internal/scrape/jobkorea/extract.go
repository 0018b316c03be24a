package jobkorea

import (
	"github.com/PuerkitoBio/goquery"

	"jobko-engine/internal/scrape/util"
)

// Rule is one attempt at pulling a field out of a listing node: a selector,
// the attribute to read (empty means text content), and an optional transform
// applied to the cleaned value.
type Rule struct {
	Selector  string
	Attr      string
	Transform func(string) string
}

// Chain is an ordered list of rules for one field. Evaluation stops at the
// first rule that produces a non-blank value; if none does, the field's
// sentinel is returned, so extraction always yields a usable string.
type Chain struct {
	Rules    []Rule
	Sentinel string
}

func (c Chain) Extract(node *goquery.Selection) string {
	for _, r := range c.Rules {
		sel := node.Find(r.Selector).First()
		if sel.Length() == 0 {
			continue
		}

		var v string
		if r.Attr != "" {
			v = util.CleanText(sel.AttrOr(r.Attr, ""))
		} else {
			v = util.NodeText(sel)
		}
		if v == "" {
			continue
		}
		if r.Transform != nil {
			v = r.Transform(v)
			if v == "" {
				continue
			}
		}
		return v
	}
	return c.Sentinel
}

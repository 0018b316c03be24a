package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// NodeText extracts the visible text of a selection with a single space
// between adjacent text chunks, so line breaks and nested elements never
// concatenate words together. Entities are already decoded by the parser.
func NodeText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(n, &b)
	}
	return CleanText(b.String())
}

func writeText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, b)
	}
}

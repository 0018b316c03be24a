package util

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a\n b\t\tc  "))
	require.Equal(t, "a b", CleanText("a\u00a0b"))
	require.Equal(t, "", CleanText(" \n\t "))
}

func TestNodeTextKeepsLineBreakSpacing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="description"><span>Backend</span>
<span>Engineer</span><br>Seoul &amp; Busan</div>`))
	require.NoError(t, err)

	got := NodeText(doc.Find("div.description"))
	require.Equal(t, "Backend Engineer Seoul & Busan", got)
}

func TestNodeTextEmptySelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>x</p>`))
	require.NoError(t, err)
	require.Equal(t, "", NodeText(doc.Find(".missing")))
}

func TestFixURL(t *testing.T) {
	const base = "https://www.jobkorea.co.kr"

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"//img.jobkorea.kr/logo.png", "https://img.jobkorea.kr/logo.png"},
		{"/Recruit/GI_Read/123", "https://www.jobkorea.co.kr/Recruit/GI_Read/123"},
		{"https://elsewhere.example/x", "https://elsewhere.example/x"},
		{"  /Recruit/GI_Read/9  ", "https://www.jobkorea.co.kr/Recruit/GI_Read/9"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FixURL(tc.in, base), "input %q", tc.in)
	}
}

func TestIsPseudoHref(t *testing.T) {
	require.True(t, IsPseudoHref("javascript:void(0)"))
	require.True(t, IsPseudoHref("JavaScript:go()"))
	require.True(t, IsPseudoHref("#"))
	require.True(t, IsPseudoHref("/#"))
	require.True(t, IsPseudoHref("  "))
	require.False(t, IsPseudoHref("/Recruit/GI_Read/1"))
	require.False(t, IsPseudoHref("https://x.example"))
}

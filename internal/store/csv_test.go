package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobko-engine/internal/domain"
)

var samplePostings = []domain.Posting{
	{
		CompanyName: "잡코리아 주식회사",
		LogoURL:     "https://img.jobkorea.kr/logo/a.png",
		JobTitle:    "Backend Engineer, Platform",
		JobSummary:  "Go, Kubernetes, \"scale\"",
		DDay:        "D-3",
		JobURL:      "https://www.jobkorea.co.kr/Recruit/GI_Read/100",
		ScrapedDate: "2026-08-28",
	},
	{
		CompanyName: domain.NoCompany,
		LogoURL:     domain.NoLogo,
		JobTitle:    domain.NoTitle,
		JobSummary:  domain.NoSummary,
		DDay:        domain.NoDDay,
		JobURL:      domain.NoURL,
		ScrapedDate: "2026-08-28",
	},
}

func TestEncodeCSVHeaderAndBOM(t *testing.T) {
	b, err := EncodeCSV(samplePostings)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(b, utf8BOM), "encoded file must start with a BOM")
	rest := bytes.TrimPrefix(b, utf8BOM)
	firstLine, _, _ := bytes.Cut(rest, []byte("\n"))
	require.Equal(t,
		"Company Name,Logo URL,Job Title,Job Summary,D-Day,Job URL,Scraped Date",
		string(bytes.TrimRight(firstLine, "\r")))
}

func TestCSVRoundTrip(t *testing.T) {
	b, err := EncodeCSV(samplePostings)
	require.NoError(t, err)

	got, err := DecodeCSV(b)
	require.NoError(t, err)
	require.Equal(t, samplePostings, got)
}

func TestDecodeCSVWithoutBOM(t *testing.T) {
	b, err := EncodeCSV(samplePostings)
	require.NoError(t, err)

	got, err := DecodeCSV(bytes.TrimPrefix(b, utf8BOM))
	require.NoError(t, err)
	require.Equal(t, samplePostings, got)
}

func TestDecodeCSVEmpty(t *testing.T) {
	got, err := DecodeCSV(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = DecodeCSV(utf8BOM)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(filepath.Join(t.TempDir(), "records.csv"))

	// missing file is an empty record set, not an error
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, s.Save(ctx, samplePostings))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, samplePostings, got)
}

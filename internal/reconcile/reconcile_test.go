package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jobko-engine/internal/domain"
)

func posting(url, title string) domain.Posting {
	return domain.Posting{
		CompanyName: domain.NoCompany,
		LogoURL:     domain.NoLogo,
		JobTitle:    title,
		JobSummary:  domain.NoSummary,
		DDay:        domain.NoDDay,
		JobURL:      url,
		ScrapedDate: "2026-08-28",
	}
}

func TestMergeLastWriteWins(t *testing.T) {
	existing := []domain.Posting{posting("u1", "Old Title")}
	incoming := []domain.Posting{posting("u1", "New Title")}

	got := Merge(existing, incoming, domain.KeyURLOnly)
	require.Len(t, got, 1)
	require.Equal(t, incoming[0], got[0])
}

func TestMergeKeyPoliciesDiverge(t *testing.T) {
	existing := []domain.Posting{posting("u1", "Old Title")}
	incoming := []domain.Posting{posting("u1", "New Title")}

	require.Len(t, Merge(existing, incoming, domain.KeyURLOnly), 1)
	require.Len(t, Merge(existing, incoming, domain.KeyURLTitle), 2)
}

func TestMergeSentinelURLsDoNotCollideUnderPairKey(t *testing.T) {
	incoming := []domain.Posting{
		posting(domain.NoURL, "Engineer A"),
		posting(domain.NoURL, "Engineer B"),
	}
	require.Len(t, Merge(nil, incoming, domain.KeyURLTitle), 2)
	require.Len(t, Merge(nil, incoming, domain.KeyURLOnly), 1)
}

func TestMergeOrderStability(t *testing.T) {
	existing := []domain.Posting{
		posting("u1", "A"),
		posting("u2", "B"),
		posting("u3", "C"),
	}
	incoming := []domain.Posting{
		posting("u2", "B2"), // replaces in place
		posting("u4", "D"),  // appended
	}

	got := Merge(existing, incoming, domain.KeyURLOnly)
	urls := make([]string, len(got))
	for i, p := range got {
		urls[i] = p.JobURL
	}
	require.Equal(t, []string{"u1", "u2", "u3", "u4"}, urls)
	require.Equal(t, "B2", got[1].JobTitle)
}

func TestMergeEmptyBatchIsNoOp(t *testing.T) {
	existing := []domain.Posting{posting("u1", "A"), posting("u2", "B")}
	incoming := []domain.Posting{posting("u1", "A2"), posting("u3", "C")}

	once := Merge(existing, incoming, domain.KeyURLTitle)
	again := Merge(once, nil, domain.KeyURLTitle)
	require.Equal(t, once, again)
}

func TestMergeLastIncomingWinsWithinBatch(t *testing.T) {
	incoming := []domain.Posting{
		posting("u1", "first parse"),
		posting("u1", "second parse"),
	}
	got := Merge(nil, incoming, domain.KeyURLOnly)
	require.Len(t, got, 1)
	require.Equal(t, "second parse", got[0].JobTitle)
}

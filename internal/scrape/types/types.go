package types

import (
	"context"

	"jobko-engine/internal/domain"
)

type ScrapeResult struct {
	Source   string
	Postings []domain.Posting
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}

// DetailFetcher resolves a company name from a posting's detail page.
// An empty string means "no company found"; implementations swallow their
// own network and parse failures.
type DetailFetcher func(ctx context.Context, jobURL string) string

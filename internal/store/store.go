package store

import (
	"context"

	"jobko-engine/internal/domain"
)

// RecordStore is where the reconciled record set lives between runs.
// Load returns nil (not an error) when no record set exists yet.
type RecordStore interface {
	Load(ctx context.Context) ([]domain.Posting, error)
	Save(ctx context.Context, postings []domain.Posting) error
}

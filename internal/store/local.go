package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofrs/flock"

	"jobko-engine/internal/domain"
)

// LocalStore keeps the record set in a CSV file on disk, used when no Drive
// folder is configured. A sibling lock file guards against two engine runs
// touching the same dataset at once.
type LocalStore struct {
	path string
	lock *flock.Flock
}

func NewLocalStore(path string) *LocalStore {
	return &LocalStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *LocalStore) withLock(ctx context.Context, fn func() error) error {
	locked, err := s.lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *LocalStore) Load(ctx context.Context) ([]domain.Posting, error) {
	var postings []domain.Posting
	err := s.withLock(ctx, func() error {
		b, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[store] no existing file %s, starting fresh", s.path)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		postings, err = DecodeCSV(b)
		return err
	})
	return postings, err
}

func (s *LocalStore) Save(ctx context.Context, postings []domain.Posting) error {
	return s.withLock(ctx, func() error {
		b, err := EncodeCSV(postings)
		if err != nil {
			return err
		}
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", tmp, err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("rename %s: %w", tmp, err)
		}
		return nil
	})
}

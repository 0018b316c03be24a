package store

import (
	"context"
	"time"
)

type Run struct {
	ID         int64
	StartedAt  string
	FinishedAt string
	Scraped    int
	Merged     int
	Status     string // "ok" or the failure message
}

func (d *DB) RecordRun(ctx context.Context, r Run) error {
	if r.FinishedAt == "" {
		r.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO runs (started_at, finished_at, scraped, merged, status)
VALUES (?, ?, ?, ?, ?);`,
		r.StartedAt, r.FinishedAt, r.Scraped, r.Merged, r.Status,
	)
	return err
}

func (d *DB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, started_at, finished_at, scraped, merged, status
FROM runs
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Scraped, &r.Merged, &r.Status); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

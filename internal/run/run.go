// Package run drives one end-to-end pipeline pass: fetch the front page,
// parse the banner section, reconcile against the stored record set, and
// persist the result. Scheduling of repeated passes is the caller's job.
package run

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobko-engine/internal/config"
	"jobko-engine/internal/domain"
	"jobko-engine/internal/fetch"
	"jobko-engine/internal/reconcile"
	"jobko-engine/internal/scrape/jobkorea"
	"jobko-engine/internal/scrape/types"
	"jobko-engine/internal/store"
)

type Options struct {
	DryRun bool
}

type Result struct {
	Scraped int
	Merged  int
}

// Once executes a single run under the configured overall deadline. A fatal
// failure (fetch past the retry budget, missing section, store error) leaves
// the stored record set untouched.
func Once(ctx context.Context, cfg config.Config, st store.RecordStore, db *store.DB, opts Options) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Run.TimeoutSeconds)*time.Second)
	defer cancel()

	started := time.Now()
	res, err := scrapeAndMerge(ctx, cfg, st, db, opts)

	if db != nil {
		status := "ok"
		if err != nil {
			status = err.Error()
		}
		if opts.DryRun {
			status = "dry-run: " + status
		}
		hctx, hcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer hcancel()
		if herr := db.RecordRun(hctx, store.Run{
			StartedAt:  started.UTC().Format(time.RFC3339),
			FinishedAt: time.Now().UTC().Format(time.RFC3339),
			Scraped:    res.Scraped,
			Merged:     res.Merged,
			Status:     status,
		}); herr != nil {
			log.Printf("[run] history write failed: %v", herr)
		}
	}
	return res, err
}

func scrapeAndMerge(ctx context.Context, cfg config.Config, st store.RecordStore, db *store.DB, opts Options) (Result, error) {
	client := fetch.New(fetch.Config{HostRPS: cfg.Scrape.HostRPS})

	var detail types.DetailFetcher
	if cfg.Scrape.DetailLookup {
		detail = client.CompanyFromDetail
	}
	scraper := jobkorea.New(jobkorea.Config{
		BaseURL:       cfg.Scrape.BaseURL,
		DetailWorkers: cfg.Scrape.DetailWorkers,
	}, client, detail)

	scraped, err := scraper.Fetch(ctx)
	if err != nil {
		return Result{}, err
	}
	log.Printf("[run] scraped %d postings from %s", len(scraped.Postings), scraped.Source)

	existing, err := st.Load(ctx)
	if err != nil {
		return Result{Scraped: len(scraped.Postings)}, fmt.Errorf("load record set: %w", err)
	}

	merged := reconcile.Merge(existing, scraped.Postings, domain.KeyURLTitle)
	log.Printf("[run] %d records after merge (existing=%d, incoming=%d)",
		len(merged), len(existing), len(scraped.Postings))

	result := Result{Scraped: len(scraped.Postings), Merged: len(merged)}
	if opts.DryRun {
		log.Printf("[run] dry run, not persisting")
		return result, nil
	}

	if err := st.Save(ctx, merged); err != nil {
		return result, fmt.Errorf("save record set: %w", err)
	}

	// after the record set is safely persisted, failures here can't cost data
	if cfg.Scrape.CacheLogos && db != nil {
		cacheLogos(ctx, db, scraped.Postings)
	}
	return result, nil
}

func cacheLogos(ctx context.Context, db *store.DB, postings []domain.Posting) {
	cached := 0
	for _, p := range postings {
		if ctx.Err() != nil {
			return
		}
		if _, ok := db.CacheLogo(ctx, p.LogoURL); ok {
			cached++
		}
	}
	if cached > 0 {
		log.Printf("[logo-cache] cached %d new logos", cached)
	}
}

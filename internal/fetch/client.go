// Package fetch is the transport collaborator: a retrying HTTP client that
// hands parsed documents to the scraper. Retries are bounded, GET-only, and
// limited to the usual transient statuses; anything past the budget is the
// caller's problem.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"jobko-engine/internal/scrape/util"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type Config struct {
	Timeout    time.Duration // per-request timeout
	RetryCount int
	HostRPS    float64
	HostBurst  int
}

type Client struct {
	r       *resty.Client
	limiter *util.HostLimiter
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.RetryCount <= 0 {
		cfg.RetryCount = 3
	}
	if cfg.HostRPS <= 0 {
		cfg.HostRPS = 2
	}
	if cfg.HostBurst <= 0 {
		cfg.HostBurst = 2
	}

	r := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(800 * time.Millisecond).
		SetRetryMaxWaitTime(8 * time.Second).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			switch res.StatusCode() {
			case 429, 500, 502, 503, 504:
				return true
			}
			return false
		}).
		SetHeaders(map[string]string{
			"User-Agent":      userAgent,
			"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		})

	return &Client{
		r:       r,
		limiter: util.NewHostLimiter(cfg.HostRPS, cfg.HostBurst),
	}
}

// GetDocument fetches url and parses the body into a goquery document.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return nil, err
	}

	res, err := c.r.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("get %s: status %d", url, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

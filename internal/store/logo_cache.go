package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobko-engine/internal/domain"
)

func LogoKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(u))
	return hex.EncodeToString(h[:])
}

// CacheLogo downloads a posting's logo image into the local db, keyed by
// sha256 of the URL. Best-effort: anything that goes wrong is logged and
// reported as a miss, never as an error to the caller.
func (d *DB) CacheLogo(ctx context.Context, raw string) (key string, cached bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == domain.NoLogo {
		return "", false
	}

	pu, err := url.Parse(raw)
	if err != nil || pu.Host == "" || (pu.Scheme != "http" && pu.Scheme != "https") {
		return "", false
	}

	key = LogoKeyFromURL(raw)

	var exists int
	e := d.Pool.QueryRowContext(ctx, `SELECT 1 FROM logos WHERE key = ? LIMIT 1;`, key).Scan(&exists)
	if e == nil {
		return key, false
	}
	if e != sql.ErrNoRows {
		return "", false
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[logo-cache] fetch error url=%s err=%v", raw, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[logo-cache] non-2xx url=%s status=%s", raw, resp.Status)
		return "", false
	}

	// cap stored blob size
	const max = 512 * 1024
	b, err := io.ReadAll(io.LimitReader(resp.Body, max+1))
	if err != nil || len(b) == 0 || len(b) > max {
		return "", false
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		ct = http.DetectContentType(b)
		if !strings.HasPrefix(ct, "image/") {
			return "", false
		}
	}

	_, err = d.Pool.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, url, content_type, bytes, fetched_at)
VALUES(?,?,?,?,?);`,
		key, raw, ct, b, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		log.Printf("[logo-cache] insert error url=%s err=%v", raw, err)
		return "", false
	}
	return key, true
}

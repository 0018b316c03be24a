// Package jobkorea scrapes the "First VVIP" banner section of the JobKorea
// front page into postings. Extraction is strictly best-effort per node:
// any field that cannot be located degrades to its sentinel, and only a
// missing section container fails the run.
package jobkorea

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"jobko-engine/internal/domain"
	"jobko-engine/internal/scrape/types"
	"jobko-engine/internal/scrape/util"
)

const (
	sectionSelector = "#Prdt_BnnrFirstVVIP"
	itemsSelector   = "ul.list_firstvvip > li"
)

// ErrSectionNotFound means the banner container is gone from the page,
// which signals a layout change, not a transient failure. Not retried.
var ErrSectionNotFound = errors.New("first vvip section not found")

type Config struct {
	BaseURL       string
	DetailWorkers int
}

// DocumentGetter is the transport collaborator feeding the scraper.
type DocumentGetter interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

type Scraper struct {
	cfg    Config
	docs   DocumentGetter
	detail types.DetailFetcher // optional, enables the phase-2 company lookup
	now    func() time.Time
}

func New(cfg Config, docs DocumentGetter, detail types.DetailFetcher) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.jobkorea.co.kr"
	}
	if cfg.DetailWorkers <= 0 {
		cfg.DetailWorkers = 4
	}
	return &Scraper{cfg: cfg, docs: docs, detail: detail, now: time.Now}
}

func (s *Scraper) Name() string { return "jobkorea" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	doc, err := s.docs.GetDocument(ctx, s.cfg.BaseURL+"/")
	if err != nil {
		return types.ScrapeResult{}, fmt.Errorf("jobkorea front page: %w", err)
	}
	postings, err := s.ParseSection(ctx, doc)
	if err != nil {
		return types.ScrapeResult{}, err
	}
	return types.ScrapeResult{Source: s.Name(), Postings: postings}, nil
}

// ParseSection builds one posting per listing node in the banner section.
// All postings from one call share the same scraped-date stamp.
func (s *Scraper) ParseSection(ctx context.Context, doc *goquery.Document) ([]domain.Posting, error) {
	section := doc.Find(sectionSelector).First()
	if section.Length() == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrSectionNotFound, sectionSelector)
	}

	items := section.Find(itemsSelector)
	if items.Length() == 0 {
		log.Printf("[scrape:jobkorea] warning: %s matched no items", itemsSelector)
		return []domain.Posting{}, nil
	}

	stamp := s.now().Format("2006-01-02")
	postings := make([]domain.Posting, items.Length())
	items.Each(func(i int, li *goquery.Selection) {
		postings[i] = s.buildPosting(li, stamp)
	})

	s.resolveMissingCompanies(ctx, postings)

	for i := range postings {
		if postings[i].CompanyName == "" {
			postings[i].CompanyName = domain.NoCompany
		}
	}
	return postings, nil
}

func (s *Scraper) buildPosting(li *goquery.Selection, stamp string) domain.Posting {
	base := s.cfg.BaseURL
	abs := func(v string) string { return util.FixURL(v, base) }

	title := Chain{
		Rules:    []Rule{{Selector: "div.description"}},
		Sentinel: domain.NoTitle,
	}
	summary := Chain{
		Rules:    []Rule{{Selector: "div.addition .summary"}},
		Sentinel: domain.NoSummary,
	}
	dday := Chain{
		Rules:    []Rule{{Selector: "div.extra .dday"}},
		Sentinel: domain.NoDDay,
	}
	logo := Chain{
		Rules:    []Rule{{Selector: "span.logo img", Attr: "src", Transform: abs}},
		Sentinel: domain.NoLogo,
	}

	return domain.Posting{
		CompanyName: CompanyFromScrapHandler(li),
		LogoURL:     logo.Extract(li),
		JobTitle:    title.Extract(li),
		JobSummary:  summary.Extract(li),
		DDay:        dday.Extract(li),
		JobURL:      ResolveJobURL(li, base),
		ScrapedDate: stamp,
	}
}

// resolveMissingCompanies runs the phase-2 detail lookups on a bounded pool.
// Each worker writes only its own index, so no locking is needed, and any
// lookup failure just leaves the name empty for sentinel substitution.
func (s *Scraper) resolveMissingCompanies(ctx context.Context, postings []domain.Posting) {
	if s.detail == nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.DetailWorkers)

	for i := range postings {
		if postings[i].CompanyName != "" || postings[i].JobURL == domain.NoURL {
			continue
		}
		i := i
		g.Go(func() error {
			if name := util.CleanText(s.detail(gctx, postings[i].JobURL)); name != "" {
				postings[i].CompanyName = name
			}
			return nil
		})
	}
	_ = g.Wait()
}

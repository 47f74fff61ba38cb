// Package alljobs scrapes AllJobs search result pages over plain HTTP.
package alljobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobpilot-engine/internal/fetch"
	"jobpilot-engine/internal/normalize"
)

const (
	baseURL      = "https://www.alljobs.co.il"
	cardsPerPage = 20
	maxPages     = 3
)

type Config struct {
	BaseURL string // override for tests; defaults to the live site
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *fetch.HostLimiter
}

func New(cfg Config, limiter *fetch.HostLimiter) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string     { return "alljobs" }
func (s *Scraper) Kind() fetch.Kind { return fetch.KindHTTP }

func (s *Scraper) Fetch(ctx context.Context, q fetch.Query) (fetch.Result, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = cardsPerPage
	}

	pages := (limit + cardsPerPage - 1) / cardsPerPage
	if pages > maxPages {
		pages = maxPages
	}

	var jobs []fetch.RawJob
	for page := 1; page <= pages && len(jobs) < limit; page++ {
		batch, err := s.fetchPage(ctx, q, page)
		if err != nil {
			// return whatever earlier pages produced; only a totally
			// empty run surfaces the error
			if len(jobs) == 0 {
				return fetch.Result{Source: s.Name()}, err
			}
			break
		}
		if len(batch) == 0 {
			break
		}
		jobs = append(jobs, batch...)
	}

	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return fetch.Result{Source: s.Name(), Jobs: jobs}, nil
}

func (s *Scraper) fetchPage(ctx context.Context, q fetch.Query, page int) ([]fetch.RawJob, error) {
	u := fmt.Sprintf("%s/SearchResultsGuest.aspx?page=%d&freetxt=%s&city=%s",
		s.cfg.BaseURL, page, url.QueryEscape(q.Keywords), url.QueryEscape(q.Location))

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "JobPilot/1.0 (+local)")
	req.Header.Set("Accept-Language", "he-IL,he;q=0.9,en;q=0.8")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alljobs get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("alljobs status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("alljobs parse html: %w", err)
	}

	return extractCards(doc), nil
}

// Card and field selectors are ordered fallback lists: the site ships
// several markup generations and A/B variants, so the first selector that
// yields anything wins.
var cardSelectors = []string{
	".job-content-top",
	"[class*='job-box']",
	".open-board .job-item",
}

func extractCards(doc *goquery.Document) []fetch.RawJob {
	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var jobs []fetch.RawJob
	cards.Each(func(_ int, card *goquery.Selection) {
		title := firstText(card,
			".job-content-top-title a",
			"h3 a",
			"a.job-title",
		)
		if title == "" {
			return
		}

		href, _ := card.Find("a[href]").First().Attr("href")
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "/") {
			href = baseURL + href
		}
		if href == "" {
			href = baseURL // generic fallback when no direct link exists
		}

		jobs = append(jobs, fetch.RawJob{
			Title:   title,
			Company: firstText(card, ".job-company-name a", ".job-company-name", "[class*='company']"),
			Location: firstText(card,
				".job-content-top-location a",
				".job-content-top-location",
				"[class*='location']",
			),
			Salary:      firstText(card, ".job-salary", "[class*='salary']"),
			Description: firstText(card, ".job-content-top-desc", "[class*='desc']"),
			PostedText:  firstText(card, ".job-content-top-date", "[class*='date']"),
			URL:         href,
		})
	})
	return jobs
}

// firstText returns the first non-empty text among the candidate selectors.
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := normalize.CleanText(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

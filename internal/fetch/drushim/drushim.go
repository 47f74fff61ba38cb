// Package drushim scrapes Drushim search results through the shared
// headless browser; the board renders its listings client-side, so plain
// HTTP fetches come back empty.
package drushim

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"

	"jobpilot-engine/internal/browser"
	"jobpilot-engine/internal/fetch"
	"jobpilot-engine/internal/normalize"
)

const siteURL = "https://www.drushim.co.il"

type Scraper struct {
	mgr *browser.Manager
}

func New(mgr *browser.Manager) *Scraper {
	return &Scraper{mgr: mgr}
}

func (s *Scraper) Name() string     { return "drushim" }
func (s *Scraper) Kind() fetch.Kind { return fetch.KindBrowser }

func (s *Scraper) Fetch(ctx context.Context, q fetch.Query) (fetch.Result, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	page, release, err := s.mgr.Page()
	if err != nil {
		return fetch.Result{Source: s.Name()}, fmt.Errorf("drushim page: %w", err)
	}
	defer release()

	searchURL := fmt.Sprintf("%s/jobs/search/%s/?ssaen=1", siteURL, url.PathEscape(q.Keywords))
	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(25000),
	}); err != nil {
		return fetch.Result{Source: s.Name()}, fmt.Errorf("drushim goto: %w", err)
	}

	if blocked(page) {
		return fetch.Result{Source: s.Name()}, fmt.Errorf("drushim: anti-bot challenge")
	}

	cards, err := jobCards(page)
	if err != nil {
		return fetch.Result{Source: s.Name()}, err
	}

	var jobs []fetch.RawJob
	for _, card := range cards {
		if len(jobs) >= limit {
			break
		}
		if ctx.Err() != nil {
			break // timed out mid-extraction; keep what we have
		}

		title := locatorText(card, "span.job-url", "h3 a", ".job-item-title")
		if title == "" {
			continue
		}

		href := ""
		if el := card.Locator("a[href]").First(); el != nil {
			if v, err := el.GetAttribute("href"); err == nil {
				href = strings.TrimSpace(v)
			}
		}
		if strings.HasPrefix(href, "/") {
			href = siteURL + href
		}
		if href == "" {
			href = siteURL
		}

		jobs = append(jobs, fetch.RawJob{
			Title:      title,
			Company:    locatorText(card, ".nameCompStyle", ".company-name", "[class*='company']"),
			Location:   locatorText(card, ".display-18", ".job-location", "[class*='location']"),
			Salary:     locatorText(card, "[class*='salary']"),
			PostedText: locatorText(card, ".job-publish-date", "[class*='date']"),
			URL:        href,
		})
	}

	return fetch.Result{Source: s.Name(), Jobs: jobs}, nil
}

func blocked(page playwright.Page) bool {
	title, _ := page.Title()
	for _, marker := range []string{"Just a moment", "Attention Required", "Cloudflare"} {
		if strings.Contains(title, marker) {
			return true
		}
	}
	count, _ := page.Locator(".captcha, .recaptcha, [data-captcha]").Count()
	return count > 0
}

func jobCards(page playwright.Page) ([]playwright.Locator, error) {
	for _, sel := range []string{".job-item-main", ".jobList_vacancy", "[data-job-id]"} {
		cards, err := page.Locator(sel).All()
		if err == nil && len(cards) > 0 {
			return cards, nil
		}
	}
	// no cards is a legitimate empty result, not a failure
	return nil, nil
}

// locatorText tries each selector in order with a short timeout; missing
// fields come back empty rather than stalling the whole card.
func locatorText(card playwright.Locator, selectors ...string) string {
	for _, sel := range selectors {
		t, err := card.Locator(sel).First().TextContent(playwright.LocatorTextContentOptions{
			Timeout: playwright.Float(250),
		})
		if err == nil {
			if t = normalize.CleanText(t); t != "" {
				return t
			}
		}
	}
	return ""
}

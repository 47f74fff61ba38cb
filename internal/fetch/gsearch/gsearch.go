// Package gsearch finds postings through the Google Custom Search JSON API.
// The API hands out at most 10 results per request and will never return
// more than 100 for a query, no matter what its reported total says; both
// caps are surfaced on the Result so pagination can tell "more exist" apart
// from "we can fetch more".
package gsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobpilot-engine/internal/fetch"
)

const (
	defaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	perRequestCap   = 10
	maxResults      = 100
)

type Config struct {
	APIKey   string
	CX       string // programmable search engine id
	Site     string // optional site restriction, e.g. "linkedin.com"
	Endpoint string // override for tests
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *fetch.HostLimiter
}

func New(cfg Config, limiter *fetch.HostLimiter) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
	}
}

func (c *Client) Name() string     { return "gsearch" }
func (c *Client) Kind() fetch.Kind { return fetch.KindAPI }

type apiResponse struct {
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// Fetch walks the API with incrementing offsets until it has q.Limit
// results or hits the platform cap. Quota rejections return what was
// collected so far together with ErrQuotaExceeded.
func (c *Client) Fetch(ctx context.Context, q fetch.Query) (fetch.Result, error) {
	limit := q.Limit
	if limit <= 0 || limit > maxResults {
		limit = maxResults
	}

	out := fetch.Result{Source: c.Name(), MaxReturnable: maxResults}

	for start := 1; len(out.Jobs) < limit && start <= maxResults; start += perRequestCap {
		num := limit - len(out.Jobs)
		if num > perRequestCap {
			num = perRequestCap
		}

		resp, err := c.request(ctx, q, start, num)
		if err != nil {
			return out, err
		}

		if total, err := strconv.Atoi(resp.SearchInformation.TotalResults); err == nil {
			out.TotalAvailable = total
		}

		for _, item := range resp.Items {
			out.Jobs = append(out.Jobs, fetch.RawJob{
				Title: item.Title,
				// company is not a structured field here; normalization
				// extracts it from "Title at Company" / "Company - Title"
				Description: item.Snippet,
				PostedText:  item.Snippet,
				URL:         item.Link,
			})
		}

		if len(resp.Items) < num {
			break // provider ran dry before the cap
		}
	}

	return out, nil
}

func (c *Client) request(ctx context.Context, q fetch.Query, start, num int) (*apiResponse, error) {
	terms := q.Keywords + " job opening"
	if q.Location != "" {
		terms += " " + q.Location
	}
	if c.cfg.Site != "" {
		terms += " site:" + c.cfg.Site
	}

	v := url.Values{}
	v.Set("key", c.cfg.APIKey)
	v.Set("cx", c.cfg.CX)
	v.Set("q", terms)
	v.Set("start", strconv.Itoa(start))
	v.Set("num", strconv.Itoa(num))

	u := c.cfg.Endpoint + "?" + v.Encode()
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gsearch get: %w", err)
	}
	defer res.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("gsearch decode: %w", err)
	}

	if res.StatusCode == http.StatusTooManyRequests || quotaError(&parsed) {
		return nil, fmt.Errorf("gsearch: %w", fetch.ErrQuotaExceeded)
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("gsearch status %d", res.StatusCode)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gsearch api error: %s", parsed.Error.Message)
	}
	return &parsed, nil
}

func quotaError(r *apiResponse) bool {
	if r.Error == nil {
		return false
	}
	for _, e := range r.Error.Errors {
		switch e.Reason {
		case "dailyLimitExceeded", "rateLimitExceeded", "quotaExceeded":
			return true
		}
	}
	return strings.Contains(strings.ToLower(r.Error.Message), "quota")
}

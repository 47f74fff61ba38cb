// Package normalize maps source-specific raw records into the common
// JobPosting shape. Records that can't produce a title and a company are
// dropped here, silently — that is the validation boundary for the whole
// pipeline.
package normalize

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/fetch"
)

// Job normalizes one raw record. ok=false means the record is dropped
// (missing title or company); that is not an error condition.
func Job(raw fetch.RawJob, source string, keywords string) (domain.JobPosting, bool) {
	title := CleanText(raw.Title)
	company := CleanText(raw.Company)
	desc := CleanText(raw.Description)

	if company == "" {
		company = ExtractCompany(title)
	}
	if company == "" {
		company = ExtractCompany(desc)
	}
	if title == "" || company == "" {
		return domain.JobPosting{}, false
	}

	location := CleanText(raw.Location)
	if location == "" {
		location = ExtractLocation(desc)
	}
	if location == "" && IsRemote(title+" "+desc) {
		location = "Remote"
	}
	if location == "" {
		location = "Unknown"
	}

	salary := CleanText(raw.Salary)
	if salary == "" {
		salary = ExtractSalary(desc)
	}

	blob := title + " " + desc
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = uuid.NewString()
	}

	originalURL := strings.TrimSpace(raw.URL)
	if originalURL == "" {
		// no direct link from the source; point at a generic search instead
		originalURL = "https://www.google.com/search?q=" + url.QueryEscape(title+" "+company)
	}

	return domain.JobPosting{
		ID:              id,
		Title:           title,
		Company:         company,
		Location:        location,
		Description:     desc,
		Salary:          salary,
		EmploymentType:  EmploymentType(blob),
		ExperienceLevel: ExperienceLevel(blob),
		Source:          source,
		OriginalURL:     originalURL,
		PostedDate:      PostedDate(raw.PostedText, time.Now()),
		Requirements:    raw.Tags,
		Benefits:        raw.Benefits,
		Keywords:        matchedKeywords(blob, keywords),
		IsActive:        true,
	}, true
}

// matchedKeywords returns the search keywords that actually appear in the
// posting text, order preserved, duplicates kept as given.
func matchedKeywords(blob, keywords string) []string {
	low := strings.ToLower(blob)
	var out []string
	for _, kw := range strings.Fields(strings.ToLower(keywords)) {
		if strings.Contains(low, kw) {
			out = append(out, kw)
		}
	}
	return out
}

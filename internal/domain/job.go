package domain

import (
	"strings"
	"time"
)

// Employment types as they appear in API responses. Sources disagree on
// casing ("Full-Time", "FULL TIME"); normalization folds everything into
// these values.
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentFreelance  = "freelance"
	EmploymentInternship = "internship"
)

const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

// JobPosting is the normalized unit of output. Records live only for the
// duration of a single search response; IDs are regenerated per fetch unless
// the source provides a stable identifier.
type JobPosting struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Salary          string    `json:"salary,omitempty"`
	EmploymentType  string    `json:"employmentType"`
	ExperienceLevel string    `json:"experienceLevel"`
	Source          string    `json:"source"`
	OriginalURL     string    `json:"originalUrl"`
	PostedDate      time.Time `json:"postedDate"`
	Requirements    []string  `json:"requirements,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	Benefits        []string  `json:"benefits,omitempty"`
	IsActive        bool      `json:"isActive"`
	MatchScore      int       `json:"matchScore,omitempty"`
}

// DedupKey collapses duplicate postings: case-folded title+company, nothing
// fancier. "Senior React Developer" and "Sr. React Developer" at the same
// company stay distinct on purpose (avoids false merges).
func (j JobPosting) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(j.Title)) + "|" + strings.ToLower(strings.TrimSpace(j.Company))
}

// IsRemote reports whether the posting reads as a remote role.
func (j JobPosting) IsRemote() bool {
	loc := strings.ToLower(j.Location)
	return strings.Contains(loc, "remote") || strings.Contains(loc, "work from home")
}

// SearchQuery is the input contract for a search request.
// Keywords is the only required field.
type SearchQuery struct {
	Keywords        string
	Location        string
	EmploymentType  string
	ExperienceLevel string
	DatePosted      string // today | week | month | all
	Page            int
	Limit           int
}

func (q SearchQuery) Valid() bool {
	return strings.TrimSpace(q.Keywords) != ""
}

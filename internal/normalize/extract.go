package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"jobpilot-engine/internal/domain"
)

// Extraction heuristics live here as pure functions so they can be unit
// tested and swapped without touching the pipeline. Mis-extraction is
// expected, not exceptional: these are string heuristics, not a grammar.

var (
	companyAtRe   = regexp.MustCompile(`(?i)\bat\s+([A-Z][\w&.'\- ]{1,40}?)(?:\s*[|,(]|\s+-\s|$)`)
	cityStateRe   = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?),\s*([A-Z]{2})\b`)
	salaryRe      = regexp.MustCompile(`[$₪]\s?\d{1,3}(?:[,.]\d{3})*[Kk]?(?:\s?[-–]\s?[$₪]?\s?\d{1,3}(?:[,.]\d{3})*[Kk]?)?(?:\s*(?:per\s+(?:year|month|hour)|/\s*(?:yr|mo|hr)))?`)
	daysAgoRe     = regexp.MustCompile(`(?i)\b(\d+)\s*days?\s+ago\b`)
	hoursAgoRe    = regexp.MustCompile(`(?i)\b(\d+)\s*(?:hours?|minutes?)\s+ago\b`)
	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashDateRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
)

// knownCities covers the boards this engine actually scrapes; anything else
// falls through to the generic "City, ST" pattern. Entries are the display
// forms returned to callers; matching folds both sides.
var knownCities = []string{
	"Tel Aviv", "Jerusalem", "Haifa", "Herzliya", "Ramat Gan",
	"Beer Sheva", "Be'er Sheva", "Netanya", "Petah Tikva", "Rehovot",
	"Raanana", "Rishon Lezion", "Holon", "Givatayim",
}

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// foldText lowercases and strips diacritics so "Ra'anana"/"Raanana" and
// accented spellings compare equal.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// ExtractCompany pulls a company name out of free text. Recognized shapes:
// "Title at Company", "Company - Title". Empty string when nothing matches.
func ExtractCompany(text string) string {
	text = CleanText(text)
	if text == "" {
		return ""
	}

	if m := companyAtRe.FindStringSubmatch(text); m != nil {
		return CleanText(m[1])
	}

	// "Company - Senior Backend Engineer": take the left side when the
	// right side looks like a role.
	if i := strings.Index(text, " - "); i > 0 {
		left, right := CleanText(text[:i]), strings.ToLower(text[i+3:])
		for _, role := range []string{"engineer", "developer", "manager", "designer", "analyst", "lead", "architect"} {
			if strings.Contains(right, role) && len(left) <= 50 {
				return left
			}
		}
	}

	return ""
}

// ExtractLocation looks for a known city, then a generic "City, ST" pair.
// Known cities come back in their canonical spelling: folding strips
// diacritics, so byte offsets into the folded text do not line up with the
// source text and must not be used to slice it.
func ExtractLocation(text string) string {
	folded := foldText(text)
	for _, city := range knownCities {
		if strings.Contains(folded, foldText(city)) {
			return city
		}
	}
	if m := cityStateRe.FindString(text); m != "" {
		return CleanText(m)
	}
	return ""
}

// ExtractSalary returns a currency-prefixed amount or range as an opaque
// display string ($ and ₪ only); formats vary too much per source to
// structure here.
func ExtractSalary(text string) string {
	return CleanText(salaryRe.FindString(text))
}

// EmploymentType spots a type keyword, defaulting to full-time.
func EmploymentType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "intern"):
		return domain.EmploymentInternship
	case strings.Contains(t, "freelance"):
		return domain.EmploymentFreelance
	case strings.Contains(t, "contract") || strings.Contains(t, "temporary"):
		return domain.EmploymentContract
	case strings.Contains(t, "part-time") || strings.Contains(t, "part time"):
		return domain.EmploymentPartTime
	default:
		return domain.EmploymentFullTime
	}
}

// ExperienceLevel spots a seniority keyword, defaulting to mid.
func ExperienceLevel(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "vp ") || strings.Contains(t, "vice president") ||
		strings.Contains(t, "director") || strings.Contains(t, "head of") ||
		strings.Contains(t, "chief") || strings.Contains(t, "executive"):
		return domain.ExperienceExecutive
	case strings.Contains(t, "senior") || strings.Contains(t, "sr.") ||
		strings.Contains(t, "staff") || strings.Contains(t, "principal") ||
		strings.Contains(t, "lead "):
		return domain.ExperienceSenior
	case strings.Contains(t, "junior") || strings.Contains(t, "jr.") ||
		strings.Contains(t, "entry") || strings.Contains(t, "graduate") ||
		strings.Contains(t, "intern") || strings.Contains(t, "student"):
		return domain.ExperienceEntry
	default:
		return domain.ExperienceMid
	}
}

// IsRemote keyword-matches remote/work-from-home mentions.
func IsRemote(text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(t, "remote") || strings.Contains(t, "work from home") ||
		strings.Contains(t, "wfh")
}

// PostedDate parses free-form posting dates: "N days ago", "today",
// "yesterday", "N hours ago", ISO dates, dd/mm/yyyy. Anything else is
// treated as posted now — sources that say "Recent" mean exactly that.
func PostedDate(text string, now time.Time) time.Time {
	text = CleanText(text)
	if text == "" {
		return now
	}
	low := strings.ToLower(text)

	switch low {
	case "today", "just now", "recent", "n/a":
		return now
	case "yesterday":
		return now.AddDate(0, 0, -1)
	}

	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -n)
	}
	if hoursAgoRe.MatchString(text) {
		return now
	}
	if isoDateRe.MatchString(text) {
		if t, err := time.Parse("2006-01-02", text[:10]); err == nil {
			return t
		}
	}
	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	return now
}

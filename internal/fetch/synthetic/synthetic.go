// Package synthetic generates placeholder postings from templates. It backs
// demo mode and acts as a zero-dependency peer to the real sources, so the
// pipeline always has something to aggregate when live boards are blocked.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"jobpilot-engine/internal/fetch"
)

var (
	seniorities = []string{"Junior", "", "Senior", "Lead"}
	roleSuffix  = []string{"Developer", "Engineer", "Specialist"}

	companies = []string{
		"TechWave", "CloudNine Systems", "DataSprint", "Innovatech",
		"BlueBit Labs", "Sunrise Software", "Nexora", "PixelForge",
	}
	cities = []string{
		"Tel Aviv", "Herzliya", "Jerusalem", "Haifa", "Ramat Gan", "Remote",
	}
	salaries = []string{
		"₪22,000 - ₪30,000", "₪28,000 - ₪38,000", "$90K - $120K", "",
	}
	requirementPool = []string{
		"3+ years of experience", "B.Sc. in Computer Science or equivalent",
		"Experience with cloud platforms", "Strong communication skills",
		"English at a high level", "Experience with CI/CD pipelines",
	}
	benefitPool = []string{
		"Hybrid work model", "Stock options", "Keren hishtalmut",
		"10bis budget", "Gym membership",
	}
)

type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded for reproducible output in tests; pass
// time-based seeds in production wiring.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) Name() string     { return "synthetic" }
func (g *Generator) Kind() fetch.Kind { return fetch.KindSynthetic }

func (g *Generator) Fetch(_ context.Context, q fetch.Query) (fetch.Result, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	role := titleCase(q.Keywords)
	if role == "" {
		role = "Software"
	}

	jobs := make([]fetch.RawJob, 0, limit)
	for i := 0; i < limit; i++ {
		company := companies[g.rng.Intn(len(companies))]
		city := q.Location
		if city == "" {
			city = cities[g.rng.Intn(len(cities))]
		}

		title := strings.TrimSpace(fmt.Sprintf("%s %s %s",
			seniorities[g.rng.Intn(len(seniorities))],
			role,
			roleSuffix[g.rng.Intn(len(roleSuffix))],
		))

		id := uuid.NewString()
		jobs = append(jobs, fetch.RawJob{
			ID:       id,
			Title:    title,
			Company:  company,
			Location: city,
			Salary:   salaries[g.rng.Intn(len(salaries))],
			Description: fmt.Sprintf(
				"%s is looking for a %s to join our team in %s. You will work on %s projects in a fast-paced environment.",
				company, title, city, strings.ToLower(role),
			),
			PostedText: fmt.Sprintf("%d days ago", g.rng.Intn(14)),
			URL:        "https://jobs.example.com/postings/" + id,
			Tags:       g.pick(requirementPool, 3),
			Benefits:   g.pick(benefitPool, 2),
		})
	}

	return fetch.Result{Source: g.Name(), Jobs: jobs}, nil
}

func (g *Generator) pick(pool []string, n int) []string {
	idx := g.rng.Perm(len(pool))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package provider

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"truthrecruit-engine/internal/apperr"
	"truthrecruit-engine/internal/domain"
	"truthrecruit-engine/internal/validation"
)

type companyProfile struct {
	Name          string
	Industry      string
	Size          string
	EmployeeCount int
	Location      string
	Description   string
	Website       string
	Founded       int
	Logo          string
}

var knownCompanies = map[string]companyProfile{
	"microsoft": {
		Name:          "Microsoft",
		Industry:      "Technology",
		Size:          "100,001+ employees",
		EmployeeCount: 200000,
		Location:      "Redmond, WA",
		Description:   "At Microsoft, our mission is to empower every person and every organization on the planet to achieve more.",
		Website:       "https://www.microsoft.com",
		Founded:       1975,
		Logo:          "https://logo.clearbit.com/microsoft.com",
	},
	"google": {
		Name:          "Google",
		Industry:      "Technology",
		Size:          "100,001+ employees",
		EmployeeCount: 150000,
		Location:      "Mountain View, CA",
		Description:   "Google's mission is to organize the world's information and make it universally accessible and useful.",
		Website:       "https://www.google.com",
		Founded:       1998,
		Logo:          "https://logo.clearbit.com/google.com",
	},
	"netflix": {
		Name:          "Netflix",
		Industry:      "Entertainment",
		Size:          "10,001-50,000 employees",
		EmployeeCount: 12000,
		Location:      "Los Gatos, CA",
		Description:   "Netflix is the world's leading streaming entertainment service.",
		Website:       "https://www.netflix.com",
		Founded:       1997,
		Logo:          "https://logo.clearbit.com/netflix.com",
	},
}

// MockLinkedIn serves company profiles and job postings without touching the
// network. Unknown slugs get a generic profile derived from the slug.
type MockLinkedIn struct {
	Now func() time.Time
}

func NewMockLinkedIn(now func() time.Time) *MockLinkedIn {
	if now == nil {
		now = time.Now
	}
	return &MockLinkedIn{Now: now}
}

func (m *MockLinkedIn) LookupCompany(ctx context.Context, linkedinURL string) (domain.Company, error) {
	if err := ctx.Err(); err != nil {
		return domain.Company{}, err
	}
	slug, ok := validation.CompanySlug(linkedinURL)
	if !ok {
		return domain.Company{}, apperr.Upstream("Invalid LinkedIn URL", nil)
	}

	p, ok := knownCompanies[slug]
	if !ok {
		p = companyProfile{
			Name:          formatCompanyName(slug),
			Industry:      "Technology",
			Size:          "1,000-5,000 employees",
			EmployeeCount: 2500,
			Location:      "San Francisco, CA",
			Description:   "A innovative company focused on delivering exceptional products and services.",
			Website:       "https://www." + slug + ".com",
			Founded:       2010,
			Logo:          "https://logo.clearbit.com/" + slug + ".com",
		}
	}

	return domain.Company{
		ID:            uuid.NewString(),
		Name:          p.Name,
		LinkedInURL:   linkedinURL,
		Industry:      p.Industry,
		Size:          p.Size,
		EmployeeCount: p.EmployeeCount,
		Location:      p.Location,
		Description:   p.Description,
		Logo:          p.Logo,
		Website:       p.Website,
		Founded:       p.Founded,
	}, nil
}

// LookupJobs returns the same three listings for every company, dated
// relative to now.
func (m *MockLinkedIn) LookupJobs(ctx context.Context, companyName string) ([]domain.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := m.Now()
	day := 24 * time.Hour
	count := func(n int) *int { return &n }

	return []domain.JobPosting{
		{
			ID:              uuid.NewString(),
			Title:           "Senior Software Engineer",
			Department:      "Engineering",
			Location:        "Remote",
			PostedDate:      now.Add(-7 * day),
			IsRemote:        true,
			ExperienceLevel: domain.ExperienceSenior,
			ApplicantCount:  count(150),
		},
		{
			ID:              uuid.NewString(),
			Title:           "Product Manager",
			Department:      "Product",
			Location:        "San Francisco, CA",
			PostedDate:      now.Add(-14 * day),
			IsRemote:        false,
			ExperienceLevel: "Mid-level",
			ApplicantCount:  count(200),
		},
		{
			ID:              uuid.NewString(),
			Title:           "Data Scientist",
			Department:      "Data Science",
			Location:        "New York, NY",
			PostedDate:      now.Add(-21 * day),
			IsRemote:        true,
			ExperienceLevel: domain.ExperienceSenior,
			ApplicantCount:  count(75),
		},
	}, nil
}

// formatCompanyName turns "acme-labs" into "Acme Labs".
func formatCompanyName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

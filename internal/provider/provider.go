// Package provider resolves the records an analysis is built from. The
// implementations in this package serve canned data; real sources plug in
// behind the same interfaces.
package provider

import (
	"context"

	"truthrecruit-engine/internal/domain"
)

type CompanyProvider interface {
	LookupCompany(ctx context.Context, linkedinURL string) (domain.Company, error)
}

type JobProvider interface {
	LookupJobs(ctx context.Context, companyName string) ([]domain.JobPosting, error)
}

type SentimentProvider interface {
	LookupSentiment(ctx context.Context, companyName string) (domain.SentimentAnalysis, error)
}

// Set bundles the three lookups an analysis needs.
type Set struct {
	Company   CompanyProvider
	Jobs      JobProvider
	Sentiment SentimentProvider
}

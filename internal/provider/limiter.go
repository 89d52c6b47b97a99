package provider

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"truthrecruit-engine/internal/domain"
)

// Limiter throttles outbound lookups per provider key (one token bucket each).
type Limiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewLimiter(reqPerSec float64, burst int) *Limiter {
	return &Limiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (l *Limiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.m[key] = lim
	return lim
}

func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.limiterFor(key).Wait(ctx)
}

const (
	KeyCompany   = "company"
	KeyJobs      = "jobs"
	KeySentiment = "sentiment"
)

// Limit wraps every provider in set so each call waits for its bucket first.
func Limit(set Set, l *Limiter) Set {
	return Set{
		Company:   limitedCompany{next: set.Company, l: l},
		Jobs:      limitedJobs{next: set.Jobs, l: l},
		Sentiment: limitedSentiment{next: set.Sentiment, l: l},
	}
}

type limitedCompany struct {
	next CompanyProvider
	l    *Limiter
}

func (p limitedCompany) LookupCompany(ctx context.Context, linkedinURL string) (domain.Company, error) {
	if err := p.l.Wait(ctx, KeyCompany); err != nil {
		return domain.Company{}, err
	}
	return p.next.LookupCompany(ctx, linkedinURL)
}

type limitedJobs struct {
	next JobProvider
	l    *Limiter
}

func (p limitedJobs) LookupJobs(ctx context.Context, companyName string) ([]domain.JobPosting, error) {
	if err := p.l.Wait(ctx, KeyJobs); err != nil {
		return nil, err
	}
	return p.next.LookupJobs(ctx, companyName)
}

type limitedSentiment struct {
	next SentimentProvider
	l    *Limiter
}

func (p limitedSentiment) LookupSentiment(ctx context.Context, companyName string) (domain.SentimentAnalysis, error) {
	if err := p.l.Wait(ctx, KeySentiment); err != nil {
		return domain.SentimentAnalysis{}, err
	}
	return p.next.LookupSentiment(ctx, companyName)
}

// NewMockSet wires the canned LinkedIn and Glassdoor providers together.
func NewMockSet(seed int64) Set {
	li := NewMockLinkedIn(nil)
	return Set{Company: li, Jobs: li, Sentiment: NewMockGlassdoor(seed)}
}

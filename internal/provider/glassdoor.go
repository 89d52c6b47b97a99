package provider

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"truthrecruit-engine/internal/domain"
)

var knownSentiment = map[string]domain.SentimentAnalysis{
	"Microsoft": {
		OverallRating:      4.4,
		ReviewCount:        15420,
		PositivePercentage: 78,
		NegativePercentage: 22,
		RecentTrend:        domain.TrendImproving,
		KeyInsights: []string{
			"Strong work-life balance praised by employees",
			"Excellent career development opportunities",
			"Competitive compensation and benefits",
			"Some concerns about bureaucracy in large teams",
		},
	},
	"Google": {
		OverallRating:      4.3,
		ReviewCount:        8730,
		PositivePercentage: 81,
		NegativePercentage: 19,
		RecentTrend:        domain.TrendStable,
		KeyInsights: []string{
			"Innovative work environment and cutting-edge projects",
			"Great perks and campus facilities",
			"High performance expectations can be stressful",
			"Strong diversity and inclusion initiatives",
		},
	},
	"Netflix": {
		OverallRating:      4.1,
		ReviewCount:        2140,
		PositivePercentage: 72,
		NegativePercentage: 28,
		RecentTrend:        domain.TrendDeclining,
		KeyInsights: []string{
			"Fast-paced, high-performance culture",
			"Freedom and responsibility philosophy",
			"Generous compensation packages",
			"High pressure and potential for burnout",
		},
	},
}

var genericInsights = []string{
	"Mixed reviews on work-life balance",
	"Opportunities for growth and learning",
	"Competitive industry compensation",
	"Company culture varies by team",
}

// MockGlassdoor serves review sentiment. Known companies get fixed records;
// anything else is drawn from rng, so a fixed seed gives a fixed sequence.
type MockGlassdoor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockGlassdoor seeds the generator with seed, or with the clock when seed is 0.
func NewMockGlassdoor(seed int64) *MockGlassdoor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockGlassdoor{rng: rand.New(rand.NewSource(seed))}
}

func (m *MockGlassdoor) LookupSentiment(ctx context.Context, companyName string) (domain.SentimentAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.SentimentAnalysis{}, err
	}
	if s, ok := knownSentiment[companyName]; ok {
		s.KeyInsights = append([]string(nil), s.KeyInsights...)
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.SentimentAnalysis{
		OverallRating:      3.8,
		ReviewCount:        m.rng.Intn(5000) + 500,
		PositivePercentage: float64(m.rng.Intn(30) + 60),
		NegativePercentage: float64(m.rng.Intn(30) + 20),
		RecentTrend:        domain.Trends[m.rng.Intn(len(domain.Trends))],
		KeyInsights:        append([]string(nil), genericInsights...),
	}, nil
}

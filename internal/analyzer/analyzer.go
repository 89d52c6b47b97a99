package analyzer

import (
	"context"
	"math"
	"time"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/domain"
	"truthrecruit-engine/internal/rank"
)

// Analyzer turns provider records into a CompanyAnalysis. It holds no
// per-request state and is safe for concurrent use.
type Analyzer struct {
	scorer  rank.AuthenticityScorer
	weights config.OverallWeights
	now     rank.Clock
}

func New(aw config.AuthenticityWeights, ow config.OverallWeights, now rank.Clock) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		scorer:  rank.NewAuthenticityScorer(aw, now),
		weights: ow,
		now:     now,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, company domain.Company, jobs []domain.JobPosting, sentiment domain.SentimentAnalysis) (domain.CompanyAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompanyAnalysis{}, err
	}

	authenticity := a.scorer.Score(company, jobs, sentiment)
	ghost := a.scorer.GhostJobProbability(company, jobs)

	now := a.now()
	breakdown := Breakdown(company, jobs, sentiment, now)
	overall := rank.Clamp(CalculateOverallScore(breakdown, a.weights), 0, 100)

	if jobs == nil {
		jobs = []domain.JobPosting{}
	}

	return domain.CompanyAnalysis{
		CompanyID:               company.ID,
		Company:                 company,
		HiringAuthenticityScore: authenticity,
		GhostJobProbability:     ghost,
		OverallScore:            overall,
		ScoreBreakdown:          breakdown,
		Sentiment:               sentiment,
		JobPostings:             jobs,
		LastAnalyzed:            now.UTC(),
		Recommendations:         Recommendations(authenticity, ghost, sentiment, company.AgeYears(now.Year())),
	}, nil
}

// CalculateOverallScore is the plain weighted sum of the breakdown; callers clamp.
func CalculateOverallScore(b domain.ScoreBreakdown, w config.OverallWeights) float64 {
	return b.HiringVelocity*w.HiringVelocity +
		b.ResponseRate*w.ResponseRate +
		b.JobPostingDuration*w.JobPostingDuration +
		b.EmployeeSatisfaction*w.EmployeeSatisfaction +
		b.CompanyStability*w.CompanyStability
}

// Breakdown computes the five sub-scores behind the overall score. These use
// fractional posting ages and their own bands, separate from the
// authenticity factors.
func Breakdown(company domain.Company, jobs []domain.JobPosting, sentiment domain.SentimentAnalysis, now time.Time) domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		HiringVelocity:       hiringVelocity(jobs, now),
		ResponseRate:         responseRate(sentiment),
		JobPostingDuration:   jobPostingDuration(jobs, now),
		EmployeeSatisfaction: employeeSatisfaction(sentiment),
		CompanyStability:     companyStability(company, sentiment, now),
	}
}

func hiringVelocity(jobs []domain.JobPosting, now time.Time) float64 {
	if len(jobs) == 0 {
		return 40
	}
	recent := 0
	for _, j := range jobs {
		if j.AgeDays(now) <= 30 {
			recent++
		}
	}
	switch {
	case recent >= 3 && recent <= 10:
		return 85
	case recent >= 1 && recent <= 15:
		return 70
	case recent > 15:
		return 50
	default:
		return 45
	}
}

func trendBonus(t domain.Trend) float64 {
	switch t {
	case domain.TrendImproving:
		return 20
	case domain.TrendStable:
		return 10
	default:
		return -5
	}
}

func responseRate(s domain.SentimentAnalysis) float64 {
	base := (s.OverallRating / 5) * 60
	return rank.Clamp(base+trendBonus(s.RecentTrend)+20, 0, 100)
}

func jobPostingDuration(jobs []domain.JobPosting, now time.Time) float64 {
	if len(jobs) == 0 {
		return 50
	}
	total := 0.0
	for _, j := range jobs {
		total += j.AgeDays(now)
	}
	avg := total / float64(len(jobs))

	switch {
	case avg >= 5 && avg <= 25:
		return 90
	case avg >= 1 && avg <= 45:
		return 75
	case avg <= 60:
		return 60
	default:
		return 40
	}
}

func employeeSatisfaction(s domain.SentimentAnalysis) float64 {
	return rank.RoundHalfUp((s.OverallRating / 5) * 100)
}

func companyStability(c domain.Company, s domain.SentimentAnalysis, now time.Time) float64 {
	ageScore := math.Min(50, float64(c.AgeYears(now.Year()))*2)
	sentimentScore := s.PositivePercentage / 2
	return rank.RoundHalfUp(ageScore + sentimentScore)
}

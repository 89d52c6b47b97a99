package rank

import (
	"math"
	"time"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/domain"
)

// Clock returns the current time. Scores depend on posting age and company
// age, so tests pin it.
type Clock func() time.Time

// Factors are the inputs of the hiring authenticity score.
type Factors struct {
	HiringVelocity  float64 `json:"hiringVelocity"`
	ResponseRate    float64 `json:"responseRate"`
	PostingDuration float64 `json:"postingDuration"`
	JobQuality      float64 `json:"jobQuality"`
	CompanyMaturity float64 `json:"companyMaturity"`
}

type AuthenticityScorer struct {
	Weights config.AuthenticityWeights
	Now     Clock
}

func NewAuthenticityScorer(w config.AuthenticityWeights, now Clock) AuthenticityScorer {
	if now == nil {
		now = time.Now
	}
	return AuthenticityScorer{Weights: w, Now: now}
}

func (s AuthenticityScorer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Score is the weighted hiring authenticity score, rounded and clamped to 0..100.
func (s AuthenticityScorer) Score(company domain.Company, jobs []domain.JobPosting, sentiment domain.SentimentAnalysis) int {
	f := s.Factors(company, jobs, sentiment)
	w := s.Weights

	weighted := f.HiringVelocity*w.HiringVelocity +
		f.ResponseRate*w.ResponseRate +
		f.PostingDuration*w.PostingDuration +
		f.JobQuality*w.JobQuality +
		f.CompanyMaturity*w.CompanyMaturity

	return int(RoundHalfUp(Clamp(weighted, 0, 100)))
}

func (s AuthenticityScorer) Factors(company domain.Company, jobs []domain.JobPosting, sentiment domain.SentimentAnalysis) Factors {
	now := s.now()
	return Factors{
		HiringVelocity:  hiringVelocity(jobs, now),
		ResponseRate:    responseRate(sentiment),
		PostingDuration: postingDuration(jobs, now),
		JobQuality:      jobQuality(jobs),
		CompanyMaturity: companyMaturity(company, now),
	}
}

func hiringVelocity(jobs []domain.JobPosting, now time.Time) float64 {
	if len(jobs) == 0 {
		return 30
	}
	recent := 0
	for _, j := range jobs {
		if wholeDays(j, now) <= 30 {
			recent++
		}
	}
	switch {
	case recent >= 5 && recent <= 15:
		return 85
	case recent >= 3 && recent <= 20:
		return 70
	case recent >= 1:
		return 60
	default:
		return 40
	}
}

// responseRate is derived from review rating and positivity; capped at 100.
func responseRate(s domain.SentimentAnalysis) float64 {
	ratingScore := (s.OverallRating / 5) * 100
	positivityBonus := s.PositivePercentage * 0.3
	return math.Min(100, ratingScore+positivityBonus)
}

func postingDuration(jobs []domain.JobPosting, now time.Time) float64 {
	if len(jobs) == 0 {
		return 50
	}
	total := 0.0
	for _, j := range jobs {
		total += wholeDays(j, now)
	}
	avg := total / float64(len(jobs))

	switch {
	case avg >= 7 && avg <= 30:
		return 90
	case avg >= 1 && avg <= 60:
		return 70
	case avg >= 60 && avg <= 90:
		return 50
	default:
		return 30
	}
}

func jobQuality(jobs []domain.JobPosting) float64 {
	if len(jobs) == 0 {
		return 50
	}
	departments := map[string]struct{}{}
	levels := map[string]struct{}{}
	for _, j := range jobs {
		departments[j.Department] = struct{}{}
		levels[j.ExperienceLevel] = struct{}{}
	}

	score := 70.0
	if len(departments) > 2 {
		score += 15
	} else if len(departments) > 1 {
		score += 10
	}
	if len(levels) > 2 {
		score += 10
	} else if len(levels) > 1 {
		score += 5
	}
	if len(jobs) > 50 {
		score -= 20
	} else if len(jobs) > 25 {
		score -= 10
	}
	return Clamp(score, 0, 100)
}

func companyMaturity(c domain.Company, now time.Time) float64 {
	age := c.AgeYears(now.Year())
	switch {
	case age >= 10:
		return 90
	case age >= 5:
		return 80
	case age >= 2:
		return 70
	default:
		return 60
	}
}

// GhostJobProbability estimates, 0..100, how likely the postings are not
// backed by real hiring intent.
func (s AuthenticityScorer) GhostJobProbability(_ domain.Company, jobs []domain.JobPosting) int {
	now := s.now()
	score := 0

	titles := map[string]int{}
	for _, j := range jobs {
		titles[j.Title]++
	}
	for _, n := range titles {
		if n > 3 {
			score += 30
			break
		}
	}

	if len(jobs) > 30 {
		score += 25
	} else if len(jobs) > 20 {
		score += 15
	}

	if len(jobs) > 10 {
		allRecent := true
		for _, j := range jobs {
			if wholeDays(j, now) > 3 {
				allRecent = false
				break
			}
		}
		if allRecent {
			score += 20
		}
	}

	if len(jobs) > 0 {
		senior := 0
		for _, j := range jobs {
			if j.ExperienceLevel == domain.ExperienceSenior {
				senior++
			}
		}
		if float64(senior)/float64(len(jobs)) > 0.8 {
			score += 15
		}
	}

	return min(100, score)
}

func wholeDays(j domain.JobPosting, now time.Time) float64 {
	return math.Floor(j.AgeDays(now))
}

func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// RoundHalfUp rounds halves towards +Inf (2.5 -> 3, -2.5 -> -2).
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

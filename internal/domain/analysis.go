package domain

import "time"

type ScoreBreakdown struct {
	HiringVelocity       float64 `json:"hiringVelocity"`
	ResponseRate         float64 `json:"responseRate"`
	JobPostingDuration   float64 `json:"jobPostingDuration"`
	EmployeeSatisfaction float64 `json:"employeeSatisfaction"`
	CompanyStability     float64 `json:"companyStability"`
}

// CompanyAnalysis is the result of one analysis run. HiringAuthenticityScore
// and OverallScore come from different weight sets and are not expected to
// agree.
type CompanyAnalysis struct {
	CompanyID               string            `json:"companyId"`
	Company                 Company           `json:"company"`
	HiringAuthenticityScore int               `json:"hiringAuthenticityScore"`
	GhostJobProbability     int               `json:"ghostJobProbability"`
	OverallScore            float64           `json:"overallScore"`
	ScoreBreakdown          ScoreBreakdown    `json:"scoreBreakdown"`
	Sentiment               SentimentAnalysis `json:"sentiment"`
	JobPostings             []JobPosting      `json:"jobPostings"`
	LastAnalyzed            time.Time         `json:"lastAnalyzed"`
	Recommendations         []string          `json:"recommendations"`
}

package httpapi

import "truthrecruit-engine/internal/domain"

type AnalysisRequest struct {
	LinkedInURL string `json:"linkedinUrl"`
	UserEmail   string `json:"userEmail,omitempty"`
}

// AnalysisResponse is the envelope of POST /api/analyze, success or not.
// ProcessingTime is in milliseconds.
type AnalysisResponse struct {
	Success        bool                    `json:"success"`
	Data           *domain.CompanyAnalysis `json:"data,omitempty"`
	Error          string                  `json:"error,omitempty"`
	ProcessingTime int64                   `json:"processingTime"`
}

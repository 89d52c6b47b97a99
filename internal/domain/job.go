package domain

import "time"

const ExperienceSenior = "Senior"

type JobPosting struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Department      string    `json:"department"`
	Location        string    `json:"location"`
	PostedDate      time.Time `json:"postedDate"`
	IsRemote        bool      `json:"isRemote"`
	ExperienceLevel string    `json:"experienceLevel"`
	ApplicantCount  *int      `json:"applicantCount,omitempty"`
}

// AgeDays is the fractional number of days between the posting date and now.
func (j JobPosting) AgeDays(now time.Time) float64 {
	return now.Sub(j.PostedDate).Hours() / 24
}

package domain

type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LinkedInURL   string `json:"linkedinUrl"`
	Industry      string `json:"industry"`
	Size          string `json:"size"`
	EmployeeCount int    `json:"employeeCount"`
	Location      string `json:"location"`
	Description   string `json:"description,omitempty"`
	Logo          string `json:"logo,omitempty"`
	Website       string `json:"website,omitempty"`
	Founded       int    `json:"founded,omitempty"` // 0 = unknown
}

// AgeYears returns how many calendar years the company has existed as of
// year. Unknown founding years count as 0.
func (c Company) AgeYears(year int) int {
	if c.Founded == 0 {
		return 0
	}
	return year - c.Founded
}

package models

// Company holds the subject-company descriptors supplied with a generation
// request. All fields are caller-owned input; the pipeline never mutates them.
type Company struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

// DisplayName returns the company name with a generic fallback so narrative
// templates never interpolate an empty string.
func (c Company) DisplayName() string {
	if c.Name == "" {
		return "The Company"
	}
	return c.Name
}

// DisplayIndustry returns the industry with a generic fallback.
func (c Company) DisplayIndustry() string {
	if c.Industry == "" {
		return "Technology"
	}
	return c.Industry
}

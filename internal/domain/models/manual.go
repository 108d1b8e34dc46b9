package models

// ManualAuditInput is a user-supplied description of a profile for the
// manual audit flow, used when automated acquisition is unavailable.
// DigitsInUsername is declared by the caller, who may be describing a
// profile without giving its exact username.
type ManualAuditInput struct {
	Username         string   `json:"username"`
	Platform         Platform `json:"platform"`
	Followers        int      `json:"followers"`
	Following        int      `json:"following"`
	Posts            int      `json:"posts"`
	Bio              string   `json:"bio"`
	HasProfilePic    bool     `json:"has_profile_pic"`
	DigitsInUsername bool     `json:"digits"`
}

// ManualAuditResult is the outcome of a rule-based manual audit
type ManualAuditResult struct {
	Username        string    `json:"username"`
	FinalScore      float64   `json:"final_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskLabel       string    `json:"risk_label"`
	FakeProbability float64   `json:"fake_probability"`
	Flags           []string  `json:"flags"`
	Recommendations []string  `json:"recommendations"`
}

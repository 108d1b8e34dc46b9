package models

// Platform identifies the social network a profile belongs to
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

// ValidPlatforms lists the platforms accepted by the API
var ValidPlatforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTwitter,
	PlatformLinkedIn,
}

// IsValid reports whether the platform is one we accept
func (p Platform) IsValid() bool {
	for _, v := range ValidPlatforms {
		if p == v {
			return true
		}
	}
	return false
}

// ProfileAttributes holds the public attributes of a social media profile
// as produced by the acquisition chain. Degraded data (all-zero counts,
// private account) is still a valid set of attributes; the scoring
// pipeline never treats it as an error.
type ProfileAttributes struct {
	Username       string   `json:"username"`
	Platform       Platform `json:"platform"`
	FullName       string   `json:"full_name,omitempty"`
	Bio            string   `json:"bio"`
	Followers      int      `json:"followers"`
	Following      int      `json:"following"`
	Posts          int      `json:"posts"`
	AccountAgeDays int      `json:"account_age_days"`
	ProfilePicURL  string   `json:"profile_pic_url,omitempty"`
	HasProfilePic  bool     `json:"has_profile_pic"`
	IsVerified     bool     `json:"is_verified"`
	IsBusiness     bool     `json:"is_business"`
	IsPrivate      bool     `json:"is_private"`

	// DataSource identifies which acquisition method produced the data
	// (e.g. "public-api", "simulated", "fallback"). Carried through to
	// the response for transparency.
	DataSource string `json:"data_source"`

	// Warning carries a human-readable note when acquisition degraded.
	Warning string `json:"warning,omitempty"`
}

// EngagementRatio returns followers per post, the signal used by the
// engagement subscore analyzer.
func (p ProfileAttributes) EngagementRatio() float64 {
	posts := p.Posts
	if posts < 1 {
		posts = 1
	}
	return float64(p.Followers) / float64(posts)
}

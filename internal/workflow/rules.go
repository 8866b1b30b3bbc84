// Package workflow holds the content lifecycle rules: the per-platform limit
// table, submission validation, and the status machines for content items,
// content requests, and scheduled posts. Everything here is pure; services
// apply these rules before touching the database.
package workflow

const (
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
	PlatformYoutube   = "youtube"
	PlatformTwitter   = "twitter"
	PlatformLinkedin  = "linkedin"
	PlatformFacebook  = "facebook"
)

// PlatformRule is the submission limit set for one platform.
type PlatformRule struct {
	MaxChars  int
	MinImages int
	MaxImages int
}

var platformRules = map[string]PlatformRule{
	PlatformInstagram: {MaxChars: 2200, MinImages: 1, MaxImages: 10},
	PlatformTiktok:    {MaxChars: 300, MinImages: 1, MaxImages: 1},
	PlatformYoutube:   {MaxChars: 5000, MinImages: 1, MaxImages: 1},
	PlatformTwitter:   {MaxChars: 280, MinImages: 1, MaxImages: 4},
	PlatformLinkedin:  {MaxChars: 3000, MinImages: 1, MaxImages: 9},
	PlatformFacebook:  {MaxChars: 63206, MinImages: 1, MaxImages: 10},
}

// RuleFor returns the limit set for platform, or ErrInvalidPlatform.
func RuleFor(platform string) (PlatformRule, error) {
	rule, ok := platformRules[platform]
	if !ok {
		return PlatformRule{}, ErrInvalidPlatform
	}
	return rule, nil
}

// Platforms lists the supported platform identifiers.
func Platforms() []string {
	return []string{
		PlatformInstagram,
		PlatformTiktok,
		PlatformYoutube,
		PlatformTwitter,
		PlatformLinkedin,
		PlatformFacebook,
	}
}

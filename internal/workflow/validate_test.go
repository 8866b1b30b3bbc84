package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleFor(t *testing.T) {
	for _, platform := range Platforms() {
		rule, err := RuleFor(platform)
		require.NoError(t, err)
		assert.Greater(t, rule.MaxChars, 0)
		assert.GreaterOrEqual(t, rule.MaxImages, rule.MinImages)
	}

	_, err := RuleFor("myspace")
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		caption    string
		imageCount int
		platform   string
		wantErr    error
	}{
		{
			name:       "valid instagram post",
			title:      "Launch",
			caption:    "New collection drops today",
			imageCount: 3,
			platform:   PlatformInstagram,
		},
		{
			name:       "missing title reported first",
			title:      "",
			caption:    "",
			imageCount: 0,
			platform:   "myspace",
			wantErr:    ErrMissingTitle,
		},
		{
			name:       "missing caption",
			title:      "Launch",
			caption:    "",
			imageCount: 1,
			platform:   PlatformInstagram,
			wantErr:    ErrMissingCaption,
		},
		{
			name:       "unknown platform fails regardless of other inputs",
			title:      "Launch",
			caption:    "ok",
			imageCount: 1,
			platform:   "myspace",
			wantErr:    ErrInvalidPlatform,
		},
		{
			name:       "tiktok caption of 301 chars",
			title:      "Clip",
			caption:    strings.Repeat("a", 301),
			imageCount: 1,
			platform:   PlatformTiktok,
			wantErr:    ErrCaptionTooLong,
		},
		{
			name:       "tiktok caption at the limit",
			title:      "Clip",
			caption:    strings.Repeat("a", 300),
			imageCount: 1,
			platform:   PlatformTiktok,
		},
		{
			name:       "instagram with zero images",
			title:      "Launch",
			caption:    "ok",
			imageCount: 0,
			platform:   PlatformInstagram,
			wantErr:    ErrTooFewImages,
		},
		{
			name:       "twitter with five images",
			title:      "Thread",
			caption:    "ok",
			imageCount: 5,
			platform:   PlatformTwitter,
			wantErr:    ErrTooManyImages,
		},
		{
			name:       "length check precedes image check",
			title:      "Clip",
			caption:    strings.Repeat("a", 301),
			imageCount: 0,
			platform:   PlatformTiktok,
			wantErr:    ErrCaptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.title, tt.caption, tt.imageCount, tt.platform)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmissionAcrossAllPlatforms(t *testing.T) {
	// For every platform the check must succeed exactly on the rule bounds.
	for _, platform := range Platforms() {
		rule, err := RuleFor(platform)
		require.NoError(t, err)

		caption := strings.Repeat("x", rule.MaxChars)
		assert.NoError(t, ValidateSubmission("t", caption, rule.MinImages, platform), platform)
		assert.NoError(t, ValidateSubmission("t", caption, rule.MaxImages, platform), platform)

		assert.ErrorIs(t, ValidateSubmission("t", caption+"x", rule.MinImages, platform), ErrCaptionTooLong, platform)
		assert.ErrorIs(t, ValidateSubmission("t", caption, rule.MinImages-1, platform), ErrTooFewImages, platform)
		assert.ErrorIs(t, ValidateSubmission("t", caption, rule.MaxImages+1, platform), ErrTooManyImages, platform)
	}
}

func TestValidateDraft(t *testing.T) {
	assert.ErrorIs(t, ValidateDraft("", "caption"), ErrMissingTitle)
	assert.ErrorIs(t, ValidateDraft("title", ""), ErrMissingCaption)
	// Draft save skips limit checks entirely.
	assert.NoError(t, ValidateDraft("title", strings.Repeat("a", 100000)))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrCaptionTooLong))
	assert.True(t, IsValidationError(ErrInvalidPlatform))
	assert.False(t, IsValidationError(ErrInvalidTransition))
	assert.False(t, IsValidationError(nil))
}

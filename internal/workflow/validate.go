package workflow

import (
	"errors"
	"unicode/utf8"
)

// Validation failures are sentinel errors so handlers can map them to stable
// codes. Only the first failing rule is reported.
var (
	ErrMissingTitle    = errors.New("MissingTitle")
	ErrMissingCaption  = errors.New("MissingCaption")
	ErrInvalidPlatform = errors.New("InvalidPlatform")
	ErrCaptionTooLong  = errors.New("CaptionTooLong")
	ErrTooFewImages    = errors.New("TooFewImages")
	ErrTooManyImages   = errors.New("TooManyImages")
)

// ValidateSubmission decides whether content may leave draft. Rules apply in
// order and short-circuit: title, caption, platform, caption length, image
// count.
func ValidateSubmission(title, caption string, imageCount int, platform string) error {
	if err := ValidateDraft(title, caption); err != nil {
		return err
	}

	rule, err := RuleFor(platform)
	if err != nil {
		return err
	}

	if utf8.RuneCountInString(caption) > rule.MaxChars {
		return ErrCaptionTooLong
	}
	if imageCount < rule.MinImages {
		return ErrTooFewImages
	}
	if imageCount > rule.MaxImages {
		return ErrTooManyImages
	}
	return nil
}

// ValidateDraft is the relaxed check used when saving a draft: only title and
// caption are required, limits are not enforced yet.
func ValidateDraft(title, caption string) error {
	if title == "" {
		return ErrMissingTitle
	}
	if caption == "" {
		return ErrMissingCaption
	}
	return nil
}

// IsValidationError reports whether err is one of the submission rule
// failures, as opposed to an infrastructure error.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingTitle),
		errors.Is(err, ErrMissingCaption),
		errors.Is(err, ErrInvalidPlatform),
		errors.Is(err, ErrCaptionTooLong),
		errors.Is(err, ErrTooFewImages),
		errors.Is(err, ErrTooManyImages):
		return true
	}
	return false
}

package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	a11yerrors "a11ypack/internal/errors"
)

// Kind identifies how a form field value is checked.
type Kind string

const (
	KindText    Kind = "text"
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindConsent Kind = "consent"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s()+-]+$`)
)

// ValidateField checks a raw field value and returns nil or one of
// ErrMissingValue, ErrInvalidFormat, ErrNotConfirmed.
func ValidateField(kind Kind, required bool, raw string) error {
	trimmed := strings.TrimSpace(raw)
	switch kind {
	case KindConsent:
		if !IsChecked(raw) {
			return a11yerrors.ErrNotConfirmed
		}
		return nil
	case KindEmail:
		if trimmed == "" {
			return missing(required)
		}
		if !emailPattern.MatchString(trimmed) {
			return a11yerrors.ErrInvalidFormat
		}
		return nil
	case KindPhone:
		if trimmed == "" {
			return missing(required)
		}
		if !phonePattern.MatchString(trimmed) {
			return a11yerrors.ErrInvalidFormat
		}
		return nil
	default:
		if trimmed == "" {
			return missing(required)
		}
		return nil
	}
}

func missing(required bool) error {
	if required {
		return a11yerrors.ErrMissingValue
	}
	return nil
}

// IsChecked reports whether a checkbox value counts as checked.
func IsChecked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Reason returns a short stable label for a validation error, used in metrics and markup.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, a11yerrors.ErrMissingValue):
		return "missing"
	case errors.Is(err, a11yerrors.ErrInvalidFormat):
		return "format"
	case errors.Is(err, a11yerrors.ErrNotConfirmed):
		return "consent"
	default:
		return "unknown"
	}
}

// ErrorForReason is the inverse of Reason. Unknown reasons map to nil.
func ErrorForReason(reason string) error {
	switch reason {
	case "missing":
		return a11yerrors.ErrMissingValue
	case "format":
		return a11yerrors.ErrInvalidFormat
	case "consent":
		return a11yerrors.ErrNotConfirmed
	default:
		return nil
	}
}

func ValidatePort(port string) error {
	value, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil || value < 0 || value > 65535 {
		return a11yerrors.ErrInvalidPort
	}
	return nil
}

func ValidateLanguageCode(code string) error {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "es":
		return nil
	default:
		return a11yerrors.ErrInvalidLanguage
	}
}

func ValidateRateLimit(maxRequests int, window time.Duration) error {
	if maxRequests <= 0 || window <= 0 {
		return a11yerrors.ErrInvalidSettings
	}
	return nil
}

package errors

import "errors"

// Field validation outcomes.
var (
	ErrMissingValue  = errors.New("missing value")
	ErrInvalidFormat = errors.New("invalid format")
	ErrNotConfirmed  = errors.New("not confirmed")
)

var (
	ErrSubmissionFailed     = errors.New("submission failed")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrUnknownForm          = errors.New("unknown form")
	ErrUnknownTarget        = errors.New("unknown navigation target")
	ErrInvalidLanguage      = errors.New("invalid language")
	ErrInvalidPort          = errors.New("invalid port")
	ErrSettingsNotFound     = errors.New("settings file not found")
	ErrInvalidSettings      = errors.New("invalid settings format")
	ErrContentNotFound      = errors.New("content not found")
)

package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoPageURL is returned when the page URL is empty.
	ErrNoPageURL = errors.New("no page URL configured")

	// ErrInvalidPageURL is returned when the page URL is not an absolute
	// http or https URL.
	ErrInvalidPageURL = errors.New("invalid page URL: must be an absolute http(s) URL")

	// ErrNoImagePath is returned when the image destination path is empty.
	ErrNoImagePath = errors.New("no image destination path configured")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxPageSize is returned when the page size limit is not positive.
	ErrInvalidMaxPageSize = errors.New("invalid max page size: must be positive")

	// ErrInvalidMaxImageSize is returned when the image size limit is not positive.
	ErrInvalidMaxImageSize = errors.New("invalid max image size: must be positive")
)

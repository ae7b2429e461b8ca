package fetch

import "errors"

// Fetch errors. Callers use errors.Is to classify failures: ErrImageWrite
// is a local I/O problem, everything else from this package is a network
// problem.
var (
	// ErrBadStatus is returned when the server answers with a non-2xx status.
	ErrBadStatus = errors.New("unexpected HTTP status")

	// ErrImageTooLarge is returned when the image exceeds the configured
	// size limit. The download fails rather than truncating the file.
	ErrImageTooLarge = errors.New("image exceeds size limit")

	// ErrImageWrite is returned when the image cannot be written to disk.
	ErrImageWrite = errors.New("failed to write image")
)

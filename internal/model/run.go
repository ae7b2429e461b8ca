package model

import "time"

// RunStatus describes the outcome of a single pipeline run.
type RunStatus string

// Run statuses. A run is either fully successful or failed; there are no
// partial outcomes because every step is a hard dependency of the next.
const (
	// StatusRunning is the initial status while the pipeline executes.
	StatusRunning RunStatus = "running"

	// StatusSuccess means every step completed.
	StatusSuccess RunStatus = "success"

	// StatusFailed means a step failed and the run was aborted.
	StatusFailed RunStatus = "failed"
)

// ErrorKind classifies a run failure for logging and the journal.
//
// Design decision: We use a coarse classification rather than error codes
// because the caller only needs to distinguish "which leg of the pipeline
// broke": the network, the page markup, the local disk, or the OS call.
type ErrorKind string

// Error kinds, one per failure surface of the pipeline.
const (
	// ErrorKindNone means no error occurred.
	ErrorKindNone ErrorKind = ""

	// ErrorKindNetwork covers DNS failures, timeouts, and non-2xx statuses.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindParse means the page markup had no recognizable image link,
	// e.g. the day's entry is a video.
	ErrorKindParse ErrorKind = "parse"

	// ErrorKindIO covers local disk failures while writing the image.
	ErrorKindIO ErrorKind = "io"

	// ErrorKindOS means the desktop personalization call was rejected.
	ErrorKindOS ErrorKind = "os_integration"
)

// StepResult records the outcome of a single pipeline step.
type StepResult struct {
	// Name is the step name as reported by Step.Name().
	Name string `json:"name"`

	// Duration is how long the step took.
	Duration time.Duration `json:"duration"`

	// Err is the step error message, empty on success.
	Err string `json:"error,omitempty"`
}

// RunReport accumulates the state of one pipeline run. Steps read the
// fields written by earlier steps and append their own results, mirroring
// the strict fetch -> extract -> download -> set ordering.
type RunReport struct {
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended, successful or not.
	FinishedAt time.Time `json:"finished_at"`

	// Picture is the extracted picture metadata. Zero until the
	// extraction step has run.
	Picture Picture `json:"picture"`

	// PageHTML is the raw page markup fetched by the first step.
	// Excluded from JSON: it is transient input for the extractor only.
	PageHTML string `json:"-"`

	// ImagePath is the local path the image was written to.
	ImagePath string `json:"image_path,omitempty"`

	// BytesWritten is the size of the downloaded image in bytes.
	BytesWritten int64 `json:"bytes_written,omitempty"`

	// ContentType is the MIME type reported for the image download.
	ContentType string `json:"content_type,omitempty"`

	// Metadata is the EXIF summary of the downloaded image, nil when the
	// image carries no EXIF data.
	Metadata *ImageMetadata `json:"metadata,omitempty"`

	// WallpaperSet reports whether the desktop background was applied.
	// False on --dry-run even when the run succeeds.
	WallpaperSet bool `json:"wallpaper_set"`

	// Steps holds per-step outcomes in execution order.
	Steps []StepResult `json:"steps"`

	// Status is the overall run outcome.
	Status RunStatus `json:"status"`

	// ErrKind classifies the failure when Status is StatusFailed.
	ErrKind ErrorKind `json:"error_kind,omitempty"`

	// Err is the failure message when Status is StatusFailed.
	Err string `json:"error,omitempty"`
}

// NewRunReport creates a RunReport for a run against the given page URL.
func NewRunReport(pageURL string) *RunReport {
	return &RunReport{
		StartedAt: time.Now(),
		Picture:   Picture{PageURL: pageURL},
		Steps:     make([]StepResult, 0, 5),
		Status:    StatusRunning,
	}
}

// AddStepResult appends a step outcome.
func (r *RunReport) AddStepResult(name string, d time.Duration, err error) {
	result := StepResult{Name: name, Duration: d}
	if err != nil {
		result.Err = err.Error()
	}
	r.Steps = append(r.Steps, result)
}

// Fail marks the run as failed with the given classification.
// The first failure wins; later calls do not overwrite it.
func (r *RunReport) Fail(kind ErrorKind, err error) {
	if r.Status == StatusFailed {
		return
	}
	r.Status = StatusFailed
	r.ErrKind = kind
	if err != nil {
		r.Err = err.Error()
	}
	r.FinishedAt = time.Now()
}

// Succeed marks the run as fully successful.
func (r *RunReport) Succeed() {
	r.Status = StatusSuccess
	r.FinishedAt = time.Now()
}

// Duration returns the wall-clock duration of the run.
// If the run has not finished yet, it measures up to now.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

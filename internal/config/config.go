package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values follow the behavior of the scheduled-task deployment this
// tool is written for: one short-lived invocation per day, no retries.
const (
	// DefaultPageURL is the daily astronomy picture page. astropix.html is
	// the canonical "today" page; the directory index serves the same markup.
	DefaultPageURL = "https://apod.nasa.gov/apod/astropix.html"

	// DefaultTimeout bounds each HTTP request. The page is a few KB and the
	// image a few MB from a well-connected host, so 30 seconds is generous
	// while still letting a wedged connection fail within the same
	// scheduler slot.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPageSize limits the page body read. The APOD page is
	// hand-written HTML well under 100KB; 5MB leaves a wide margin while
	// preventing memory exhaustion from a misbehaving response.
	DefaultMaxPageSize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxImageSize limits the image download. Full-resolution
	// astronomy images occasionally exceed 30MB; 64MB covers every image
	// published to date while still bounding disk usage.
	DefaultMaxImageSize = 64 * 1024 * 1024 // 64MB

	// DefaultUserAgent identifies apodwall in HTTP requests.
	// A descriptive User-Agent is polite to the operators of the page.
	DefaultUserAgent = "apodwall/1.0 (+https://github.com/nao1215/apodwall)"

	// AppName is the application name used for XDG directory paths.
	AppName = "apodwall"

	// DefaultImageFileName is the wallpaper file name inside the data
	// directory. Each run overwrites this single file; no history is kept.
	DefaultImageFileName = "apod.jpg"

	// DefaultLogFileName is the append-only log file name inside the data
	// directory.
	DefaultLogFileName = "apodwall.log"
)

// Config holds all configuration options for a single run.
// This struct is populated from defaults, then the optional config file,
// then CLI flags, and passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// because the option count is small and every option belongs to the one
// pipeline this tool runs.
type Config struct {
	// PageURL is the URL of the daily picture page to fetch.
	PageURL string

	// ImagePath is the destination path for the downloaded image.
	// The file is atomically replaced on each successful run.
	ImagePath string

	// LogPath is the append-only log file path.
	LogPath string

	// DBDir is the directory holding the run journal database.
	DBDir string

	// Timeout is the per-request HTTP timeout for both the page fetch
	// and the image download.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxPageSize is the maximum page body size in bytes to read.
	MaxPageSize int64

	// MaxImageSize is the maximum image size in bytes to download.
	// Larger downloads fail rather than silently truncating the image.
	MaxImageSize int64

	// Verbose enables debug-level console output. The log file always
	// records at debug level regardless of this setting.
	Verbose bool

	// DryRun skips the desktop background call. Everything else runs,
	// including the download and the journal record.
	DryRun bool

	// ConfigFilePath is the explicit config file path from the CLI.
	// If empty, the tool searches for .apodwall in the current directory
	// and then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (URLs, timeouts, paths).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		PageURL:      DefaultPageURL,
		ImagePath:    filepath.Join(XDGDataDir(), DefaultImageFileName),
		LogPath:      filepath.Join(XDGDataDir(), DefaultLogFileName),
		DBDir:        XDGDataDir(),
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxPageSize:  DefaultMaxPageSize,
		MaxImageSize: DefaultMaxImageSize,
	}
}

// XDGDataDir returns the XDG data directory for apodwall.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/apodwall
// On macOS: ~/Library/Application Support/apodwall
// On Windows: %LOCALAPPDATA%\apodwall
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for apodwall.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after flag and file merging, before
// the pipeline starts, to fail fast with a clear message. We return the
// first error found because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.PageURL == "" {
		return ErrNoPageURL
	}

	u, err := url.Parse(c.PageURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidPageURL
	}

	if c.ImagePath == "" {
		return ErrNoImagePath
	}

	// Timeout must be positive; zero would disable the bound entirely and
	// negative would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxPageSize <= 0 {
		return ErrInvalidMaxPageSize
	}

	if c.MaxImageSize <= 0 {
		return ErrInvalidMaxImageSize
	}

	return nil
}

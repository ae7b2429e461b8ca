package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nao1215/apodwall/internal/apod"
	"github.com/nao1215/apodwall/internal/fetch"
	"github.com/nao1215/apodwall/internal/imagemeta"
	"github.com/nao1215/apodwall/internal/model"
	"github.com/nao1215/apodwall/internal/wallpaper"
)

// FetchPageStep downloads the picture page markup.
type FetchPageStep struct {
	// client performs the HTTP fetch.
	client *fetch.Client

	// pageURL is the picture page to fetch.
	pageURL string
}

// NewFetchPageStep creates the page fetch step.
func NewFetchPageStep(client *fetch.Client, pageURL string) *FetchPageStep {
	return &FetchPageStep{
		client:  client,
		pageURL: pageURL,
	}
}

// Name returns the step name.
func (s *FetchPageStep) Name() string {
	return "fetch_page"
}

// Do fetches the page and stores its markup in the report.
func (s *FetchPageStep) Do(ctx context.Context, report *model.RunReport) error {
	content, err := s.client.FetchPage(ctx, s.pageURL)
	if err != nil {
		return fmt.Errorf("failed to fetch picture page: %w", err)
	}
	report.PageHTML = content
	return nil
}

// Classify maps fetch errors to the network surface.
func (s *FetchPageStep) Classify(_ error) model.ErrorKind {
	return model.ErrorKindNetwork
}

// ExtractStep finds the day's full-resolution image link in the fetched
// page markup.
type ExtractStep struct {
	// pageURL is the page URL relative image hrefs resolve against.
	pageURL string
}

// NewExtractStep creates the image link extraction step.
func NewExtractStep(pageURL string) *ExtractStep {
	return &ExtractStep{pageURL: pageURL}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract_image_url"
}

// Do parses the markup stored by the fetch step and records the picture.
// A page without an image anchor (a video day) fails the run: there is
// nothing to set as wallpaper.
func (s *ExtractStep) Do(_ context.Context, report *model.RunReport) error {
	parser, err := apod.NewParser(s.pageURL)
	if err != nil {
		return err
	}

	pic, err := parser.Parse(strings.NewReader(report.PageHTML))
	if err != nil {
		return err
	}

	report.Picture = *pic
	return nil
}

// Classify maps extraction errors to the parse surface.
func (s *ExtractStep) Classify(_ error) model.ErrorKind {
	return model.ErrorKindParse
}

// DownloadStep downloads the full-resolution image to its destination
// path, replacing the previous image only after a complete download.
type DownloadStep struct {
	// client performs the HTTP download.
	client *fetch.Client

	// dest is the path the image is written to.
	dest string
}

// NewDownloadStep creates the image download step.
func NewDownloadStep(client *fetch.Client, dest string) *DownloadStep {
	return &DownloadStep{
		client: client,
		dest:   dest,
	}
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return "download_image"
}

// Do downloads the image found by the extraction step.
func (s *DownloadStep) Do(ctx context.Context, report *model.RunReport) error {
	if report.Picture.ImageURL == "" {
		return errors.New("no image URL extracted; extraction step must run first")
	}

	result, err := s.client.DownloadImage(ctx, report.Picture.ImageURL, s.dest)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}

	report.ImagePath = result.Path
	report.BytesWritten = result.BytesWritten
	report.ContentType = result.ContentType
	return nil
}

// Classify distinguishes local disk failures from network failures.
func (s *DownloadStep) Classify(err error) model.ErrorKind {
	if errors.Is(err, fetch.ErrImageWrite) {
		return model.ErrorKindIO
	}
	return model.ErrorKindNetwork
}

// MetadataStep reads the EXIF summary of the downloaded image.
//
// The step is advisory: camera information enriches the log and the run
// journal, but a stripped or broken EXIF block must never fail a run
// that already has the image on disk.
type MetadataStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewMetadataStep creates the metadata step.
func NewMetadataStep(logger *slog.Logger) *MetadataStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataStep{logger: logger}
}

// Name returns the step name.
func (s *MetadataStep) Name() string {
	return "image_metadata"
}

// Do extracts EXIF metadata from the downloaded image. Always nil.
func (s *MetadataStep) Do(_ context.Context, report *model.RunReport) error {
	if report.ImagePath == "" {
		return nil
	}

	data, err := os.ReadFile(report.ImagePath)
	if err != nil {
		s.logger.Debug("could not read image for metadata", "path", report.ImagePath, "error", err)
		return nil
	}

	meta, err := imagemeta.Extract(data)
	if err != nil {
		s.logger.Debug("could not extract image metadata", "path", report.ImagePath, "error", err)
		return nil
	}
	if meta == nil {
		s.logger.Debug("image carries no EXIF metadata", "path", report.ImagePath)
		return nil
	}

	report.Metadata = meta
	s.logger.Debug("extracted image metadata", "summary", meta.Summary())
	return nil
}

// WallpaperStep applies the downloaded image as the desktop background.
type WallpaperStep struct {
	// setter performs the OS wallpaper call.
	setter wallpaper.Setter

	// dryRun skips the OS call while still validating the image path.
	dryRun bool

	// logger for structured logging.
	logger *slog.Logger
}

// WallpaperStepOption configures a WallpaperStep.
type WallpaperStepOption func(*WallpaperStep)

// WithDryRun skips the actual wallpaper change. The run still reports
// success, with WallpaperSet left false.
func WithDryRun(dryRun bool) WallpaperStepOption {
	return func(s *WallpaperStep) {
		s.dryRun = dryRun
	}
}

// WithWallpaperLogger sets a custom logger for the wallpaper step.
func WithWallpaperLogger(logger *slog.Logger) WallpaperStepOption {
	return func(s *WallpaperStep) {
		s.logger = logger
	}
}

// NewWallpaperStep creates the wallpaper step.
func NewWallpaperStep(setter wallpaper.Setter, opts ...WallpaperStepOption) *WallpaperStep {
	s := &WallpaperStep{
		setter: setter,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *WallpaperStep) Name() string {
	return "set_wallpaper"
}

// Do sets the downloaded image as the desktop background.
func (s *WallpaperStep) Do(ctx context.Context, report *model.RunReport) error {
	if report.ImagePath == "" {
		return errors.New("no image downloaded; download step must run first")
	}

	if s.dryRun {
		s.logger.Info("dry run: skipping wallpaper change", "image", report.ImagePath)
		return nil
	}

	if err := s.setter.Set(ctx, report.ImagePath); err != nil {
		return err
	}

	report.WallpaperSet = true
	return nil
}

// Classify maps wallpaper errors to the OS integration surface.
func (s *WallpaperStep) Classify(_ error) model.ErrorKind {
	return model.ErrorKindOS
}

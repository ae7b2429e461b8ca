package pipeline

import (
	"log/slog"

	"github.com/nao1215/apodwall/internal/config"
	"github.com/nao1215/apodwall/internal/fetch"
	"github.com/nao1215/apodwall/internal/wallpaper"
)

// Default builds the standard wallpaper pipeline from the given
// configuration: fetch the page, extract the image link, download the
// image, read its metadata, and set the desktop background.
func Default(cfg *config.Config, setter wallpaper.Setter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxPageSize(cfg.MaxPageSize),
		fetch.WithMaxImageSize(cfg.MaxImageSize),
	)

	p := New(WithLogger(logger))
	p.AddSteps(
		NewFetchPageStep(client, cfg.PageURL),
		NewExtractStep(cfg.PageURL),
		NewDownloadStep(client, cfg.ImagePath),
		NewMetadataStep(logger),
		NewWallpaperStep(setter,
			WithDryRun(cfg.DryRun),
			WithWallpaperLogger(logger),
		),
	)
	return p
}

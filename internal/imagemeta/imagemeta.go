package imagemeta

import (
	"errors"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/apodwall/internal/model"
)

// Extract reads the EXIF block of an image and returns the fields worth
// surfacing in the run log: camera make and model, processing software,
// and the capture timestamp.
//
// Astronomical images often carry no EXIF at all (rendered composites,
// stripped uploads). That is not an error: Extract returns (nil, nil) so
// the caller logs the image as plain pixels and moves on.
func Extract(data []byte) (*model.ImageMetadata, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, err
	}
	if rawExif == nil {
		return nil, nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		// A corrupt EXIF block is treated like a missing one: metadata is
		// advisory and must never sink the run.
		return nil, nil
	}

	meta := &model.ImageMetadata{}
	for _, entry := range entries {
		switch entry.TagName {
		case "Make":
			meta.CameraMake = entry.Formatted
		case "Model":
			meta.CameraModel = entry.Formatted
		case "Software", "ProcessingSoftware":
			if meta.Software == "" {
				meta.Software = entry.Formatted
			}
		case "DateTimeOriginal":
			meta.CapturedAt = entry.Formatted
		case "DateTime":
			if meta.CapturedAt == "" {
				meta.CapturedAt = entry.Formatted
			}
		}
	}

	if *meta == (model.ImageMetadata{}) {
		return nil, nil
	}
	return meta, nil
}

package model

// Picture holds the metadata extracted from the daily astronomy picture page.
// All fields are plain strings because the page markup is hand-written HTML
// and every value is best-effort except ImageURL, which is mandatory.
type Picture struct {
	// PageURL is the URL of the page the picture was extracted from.
	PageURL string `json:"page_url"`

	// ImageURL is the absolute URL of the full-resolution image.
	// This is the only field the extractor guarantees to be present.
	ImageURL string `json:"image_url"`

	// Title is the picture title, when the page markup carries one.
	Title string `json:"title,omitempty"`

	// Date is the human-readable date string from the page header,
	// e.g. "2026 August 31". Empty when the markup doesn't expose it.
	Date string `json:"date,omitempty"`
}

// ImageMetadata is a small EXIF summary of the downloaded image.
// Astronomy pictures are frequently re-encoded and carry no EXIF at all;
// a nil ImageMetadata is the common case, not an error.
type ImageMetadata struct {
	// CameraMake is the EXIF Make tag value.
	CameraMake string `json:"camera_make,omitempty"`

	// CameraModel is the EXIF Model tag value.
	CameraModel string `json:"camera_model,omitempty"`

	// Software is the EXIF Software tag value (editing/processing tool).
	Software string `json:"software,omitempty"`

	// CapturedAt is the EXIF DateTimeOriginal (or DateTime) tag value,
	// kept as the raw EXIF string since EXIF timestamps have no timezone.
	CapturedAt string `json:"captured_at,omitempty"`
}

// Summary returns a single-line description suitable for logs and the
// run journal. Returns an empty string when no field is set.
func (m *ImageMetadata) Summary() string {
	if m == nil {
		return ""
	}

	parts := make([]string, 0, 4)
	if m.CameraMake != "" {
		parts = append(parts, m.CameraMake)
	}
	if m.CameraModel != "" {
		parts = append(parts, m.CameraModel)
	}
	if m.Software != "" {
		parts = append(parts, m.Software)
	}
	if m.CapturedAt != "" {
		parts = append(parts, m.CapturedAt)
	}

	return joinNonEmpty(parts)
}

// joinNonEmpty joins parts with ", " skipping empty strings.
func joinNonEmpty(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

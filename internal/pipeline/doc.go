// Package pipeline orchestrates the wallpaper run as a sequence of
// steps sharing one run report: fetch the picture page, extract the
// full-resolution image link, download the image, read its EXIF
// metadata, and apply it as the desktop background.
//
// Steps run strictly in order because each one consumes what the
// previous one produced. The first failing step aborts the run and
// classifies the failure; only the metadata step is advisory.
package pipeline

// Package imagemeta extracts a compact EXIF summary from downloaded
// image bytes. The summary is purely informational: a missing or broken
// EXIF block yields nil metadata rather than an error.
package imagemeta

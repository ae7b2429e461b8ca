// Package model defines the core data structures used throughout apodwall.
//
// This package contains the following main types:
//   - Picture: Metadata extracted from the daily astronomy picture page
//   - RunReport: The per-run result structure accumulated by pipeline steps
//   - ImageMetadata: EXIF summary of the downloaded image
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (apod, pipeline, journal, report) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// journal storage.
package model

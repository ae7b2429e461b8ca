// Package fetch provides the HTTP layer of apodwall: a single GET for the
// daily picture page and a single GET for the full-resolution image.
//
// There are no retries and no concurrency; each run issues exactly two
// requests. The image download replaces the destination file atomically so
// a failure mid-transfer leaves the previous wallpaper intact.
package fetch

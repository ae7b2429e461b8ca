package wallpaper

import "context"

// Setter applies an image file as the desktop background.
//
// Design decision: Setter is an interface rather than a function because:
//  1. The real implementation talks to the OS shell, which tests cannot do
//  2. Callers can swap in a recording fake and assert the path they passed
//  3. A dry-run wrapper composes naturally around it
type Setter interface {
	// Set makes the image at path the desktop background on every monitor,
	// centered at its native resolution with no scaling. The path must
	// point at an existing raster image file.
	Set(ctx context.Context, path string) error
}

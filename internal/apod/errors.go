package apod

import "errors"

// ErrNoImageLink is returned when the page has no anchor pointing at a
// full-size raster image. This is the normal outcome on days the entry is
// a video; the run fails and the previous wallpaper stays in place.
var ErrNoImageLink = errors.New("no image link found")

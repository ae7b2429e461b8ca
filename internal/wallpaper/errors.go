package wallpaper

import "errors"

var (
	// ErrSetWallpaper is returned when the OS shell rejects the
	// wallpaper change.
	ErrSetWallpaper = errors.New("failed to set desktop wallpaper")

	// ErrUnsupportedPlatform is returned on operating systems without a
	// desktop wallpaper implementation.
	ErrUnsupportedPlatform = errors.New("setting the desktop wallpaper is not supported on this platform")
)

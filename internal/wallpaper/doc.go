// Package wallpaper applies an image file as the desktop background.
//
// On Windows the image is set through the shell's IDesktopWallpaper COM
// interface, centered at native resolution on every monitor. Other
// platforms get a stub that fails with ErrUnsupportedPlatform.
package wallpaper

//go:build !windows

package wallpaper

import (
	"context"
	"fmt"
	"runtime"
)

// DesktopSetter is a placeholder on platforms without a desktop
// wallpaper implementation. Set always fails with
// ErrUnsupportedPlatform so the run reports a clear reason instead of
// silently doing nothing.
type DesktopSetter struct{}

// NewDesktopSetter creates a Setter for the local desktop.
func NewDesktopSetter() *DesktopSetter {
	return &DesktopSetter{}
}

// Set reports that the platform has no wallpaper support.
func (s *DesktopSetter) Set(_ context.Context, _ string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}

// Ensure DesktopSetter implements Setter.
var _ Setter = (*DesktopSetter)(nil)

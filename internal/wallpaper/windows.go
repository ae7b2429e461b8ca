//go:build windows

package wallpaper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows/registry"
)

// COM identifiers for the shell's DesktopWallpaper class, pulled from
// the platform headers (shobjidl_core.h).
const (
	desktopWallpaperCLSID = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
	desktopWallpaperIID   = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"

	// dwposCenter is DESKTOP_WALLPAPER_POSITION / DWPOS_CENTER.
	dwposCenter = uintptr(0)
)

// iDesktopWallpaperVtbl mirrors the IDesktopWallpaper virtual method
// table. The interface does not extend IDispatch, so calls go through
// the vtable slots directly instead of go-ole's dispatch helpers.
type iDesktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
	SetBackgroundColor        uintptr
	GetBackgroundColor        uintptr
	SetPosition               uintptr
	GetPosition               uintptr
	SetSlideshow              uintptr
	GetSlideshow              uintptr
	SetSlideshowOptions       uintptr
	GetSlideshowOptions       uintptr
	AdvanceSlideshow          uintptr
	GetStatus                 uintptr
	Enable                    uintptr
}

// DesktopSetter sets the desktop background through the shell's
// IDesktopWallpaper COM interface.
//
// Design decision: We use IDesktopWallpaper rather than the legacy
// SystemParametersInfoW call because:
//  1. It applies the image to every monitor in one pass
//  2. SetPosition expresses "center, no scaling" directly, instead of
//     encoding it through registry strings alone
//  3. The change persists across sessions without a WM_SETTINGCHANGE
//     broadcast
//
// The registry fit keys are still written first: older shell components
// read them, and leaving a stale "stretch" style there would fight the
// COM setting.
type DesktopSetter struct{}

// NewDesktopSetter creates a Setter for the local desktop.
func NewDesktopSetter() *DesktopSetter {
	return &DesktopSetter{}
}

// Set makes the image at path the background on all monitors, centered
// at native resolution.
func (s *DesktopSetter) Set(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}

	if err := setFitRegistryKeys(); err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}

	if err := ole.CoInitialize(0); err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}
	defer ole.CoUninitialize()

	desktop, err := ole.CreateInstance(
		ole.NewGUID(desktopWallpaperCLSID),
		ole.NewGUID(desktopWallpaperIID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}
	defer desktop.Release()

	vtable := (*iDesktopWallpaperVtbl)(unsafe.Pointer(desktop.RawVTable))

	hr, _, _ := syscall.Syscall(
		vtable.SetPosition,
		2,
		uintptr(unsafe.Pointer(desktop)),
		dwposCenter,
		0)
	if hr != 0 {
		return fmt.Errorf("%w: SetPosition returned 0x%08x", ErrSetWallpaper, hr)
	}

	pathPtr, err := syscall.UTF16PtrFromString(abs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}

	// A NULL monitor ID applies the image to every monitor.
	hr, _, _ = syscall.Syscall(
		vtable.SetWallpaper,
		3,
		uintptr(unsafe.Pointer(desktop)),
		0,
		uintptr(unsafe.Pointer(pathPtr)))
	if hr != 0 {
		return fmt.Errorf("%w: SetWallpaper returned 0x%08x", ErrSetWallpaper, hr)
	}

	return nil
}

// setFitRegistryKeys writes the desktop fit keys for "centered, not
// tiled": WallpaperStyle 0 disables stretching and TileWallpaper 0
// disables tiling.
func setFitRegistryKeys() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.SetStringValue("WallpaperStyle", "0"); err != nil {
		return err
	}
	return k.SetStringValue("TileWallpaper", "0")
}

// Ensure DesktopSetter implements Setter.
var _ Setter = (*DesktopSetter)(nil)

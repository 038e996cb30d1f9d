//go:build windows

package host

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Focus brings the panel to the foreground. Wails shows the window but
// Windows will not always hand it focus, so force it through user32.
func (w *Wails) Focus() error {
	wailsruntime.WindowShow(w.ctx)

	user32 := windows.NewLazyDLL("user32.dll")
	procFindWindowW := user32.NewProc("FindWindowW")
	procSetForegroundWindow := user32.NewProc("SetForegroundWindow")

	title, err := windows.UTF16PtrFromString(w.title)
	if err != nil {
		return fmt.Errorf("invalid window title: %w", err)
	}

	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd == 0 {
		return fmt.Errorf("window not found: %q", w.title)
	}

	ret, _, _ := procSetForegroundWindow.Call(hwnd)
	if ret == 0 {
		return fmt.Errorf("failed to bring window to foreground")
	}

	return nil
}

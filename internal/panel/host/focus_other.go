//go:build !windows

package host

import (
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Focus brings the panel to the foreground. Showing the window is sufficient
// on these platforms; the window manager grants focus to newly shown windows.
func (w *Wails) Focus() error {
	wailsruntime.WindowShow(w.ctx)
	return nil
}

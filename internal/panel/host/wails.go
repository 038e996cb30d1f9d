// Package host implements the panel.WindowHost boundary on top of the Wails
// v2 runtime.
package host

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"panel-shell/internal/placement"
)

// Wails drives the panel window through the Wails runtime. The context is
// the one Wails hands to OnStartup.
type Wails struct {
	ctx   context.Context
	title string
}

// NewWails creates a host bound to the Wails application context. The title
// is used for platform-specific window lookups.
func NewWails(ctx context.Context, title string) *Wails {
	return &Wails{ctx: ctx, title: title}
}

// WindowSize returns the panel window's current size.
func (w *Wails) WindowSize() (placement.Size, error) {
	width, height := runtime.WindowGetSize(w.ctx)
	if width <= 0 || height <= 0 {
		return placement.Size{}, fmt.Errorf("window not found: reported size %dx%d", width, height)
	}
	return placement.Size{Width: width, Height: height}, nil
}

// CurrentMonitor returns the geometry of the screen the panel lives on. The
// shell assumes a single active monitor, so the origin is always (0, 0).
func (w *Wails) CurrentMonitor() (placement.Rect, error) {
	screens, err := runtime.ScreenGetAll(w.ctx)
	if err != nil {
		return placement.Rect{}, fmt.Errorf("failed to query screens: %w", err)
	}
	if len(screens) == 0 {
		return placement.Rect{}, fmt.Errorf("no monitor found")
	}

	screen := screens[0]
	for _, s := range screens {
		if s.IsCurrent {
			screen = s
			break
		}
		if s.IsPrimary {
			screen = s
		}
	}

	size := placement.Size{Width: screen.Size.Width, Height: screen.Size.Height}
	if size.Width <= 0 || size.Height <= 0 {
		return placement.Rect{}, fmt.Errorf("monitor reported degenerate size %dx%d", size.Width, size.Height)
	}

	return placement.Rect{Point: placement.Point{X: 0, Y: 0}, Size: size}, nil
}

// SetPosition moves the panel window's top-left corner.
func (w *Wails) SetPosition(p placement.Point) error {
	runtime.WindowSetPosition(w.ctx, p.X, p.Y)
	return nil
}

// Show makes the panel visible.
func (w *Wails) Show() error {
	runtime.WindowShow(w.ctx)
	return nil
}

// Hide hides the panel.
func (w *Wails) Hide() error {
	runtime.WindowHide(w.ctx)
	return nil
}

// SetAlwaysOnTop pins or unpins the panel above other windows.
func (w *Wails) SetAlwaysOnTop(onTop bool) error {
	runtime.WindowSetAlwaysOnTop(w.ctx, onTop)
	return nil
}

// Center centers the panel on its current monitor using the host primitive.
func (w *Wails) Center() error {
	runtime.WindowCenter(w.ctx)
	return nil
}

// Emit sends a named event to the frontend.
func (w *Wails) Emit(event string, payload ...interface{}) {
	runtime.EventsEmit(w.ctx, event, payload...)
}

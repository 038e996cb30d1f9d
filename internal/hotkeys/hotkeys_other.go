//go:build !windows

package hotkeys

import (
	"context"
	"errors"
)

// ErrUnsupported is returned where no global hotkey backend exists. Callers
// treat registration as best-effort; the tray and frontend remain usable.
var ErrUnsupported = errors.New("global hotkeys not supported on this platform")

// Start is a stub on platforms without a hotkey backend.
func (m *Manager) Start(ctx context.Context) error {
	return ErrUnsupported
}

// Package panel applies placements to the panel window through an explicitly
// passed host handle and owns the panel's collapsed state and saved custom
// positions.
package panel

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"panel-shell/internal/config"
	"panel-shell/internal/history"
	"panel-shell/internal/placement"
	"panel-shell/internal/store"
)

// WindowHost is the boundary to the GUI host. The service queries geometry
// and applies positions through it; it never reaches into the host directly.
type WindowHost interface {
	WindowSize() (placement.Size, error)
	CurrentMonitor() (placement.Rect, error)
	SetPosition(placement.Point) error
	Show() error
	Hide() error
	Focus() error
	SetAlwaysOnTop(onTop bool) error
	Center() error
	Emit(event string, payload ...interface{})
}

// Events emitted to the frontend.
const (
	EventShouldExpand = "panel-should-expand"
	EventToggle       = "panel-toggle"
)

const customPositionKeyPrefix = "custom_position_"

// Service manages the panel window.
type Service struct {
	host    WindowHost
	store   *store.Store
	config  *config.Service
	log     *zap.Logger
	history *history.Ring

	// originBottomLeft reflects the host platform's vertical origin
	// convention for monitor coordinates.
	originBottomLeft bool

	mu        sync.Mutex
	collapsed bool
	lastMode  string
}

// New creates a new panel service.
func New(host WindowHost, st *store.Store, cfg *config.Service, logger *zap.Logger, originBottomLeft bool) *Service {
	return &Service{
		host:             host,
		store:            st,
		config:           cfg,
		log:              logger,
		history:          history.New(0),
		originBottomLeft: originBottomLeft,
	}
}

// PositionTopCenter places the panel horizontally centered near the top edge.
func (s *Service) PositionTopCenter() error {
	s.log.Info("position top-center invoked")

	monitor, window, err := s.geometry()
	if err != nil {
		return err
	}

	pos := placement.TopCenter(monitor, window, s.margin(nil), s.originBottomLeft)
	s.log.Debug("resolved top-center position",
		zap.Int("x", pos.X), zap.Int("y", pos.Y),
		zap.Bool("origin_bottom_left", s.originBottomLeft))

	return s.apply("top", pos)
}

// PositionLeftCenter places the panel vertically centered near the left edge.
// A nil margin uses the configured default.
func (s *Service) PositionLeftCenter(margin *int) error {
	s.log.Info("position left-center invoked")
	return s.positionEdge("left", placement.SideLeft, margin)
}

// PositionRightCenter places the panel vertically centered near the right
// edge. A nil margin uses the configured default.
func (s *Service) PositionRightCenter(margin *int) error {
	s.log.Info("position right-center invoked")
	return s.positionEdge("right", placement.SideRight, margin)
}

func (s *Service) positionEdge(mode string, side placement.Side, margin *int) error {
	monitor, window, err := s.geometry()
	if err != nil {
		return err
	}

	pos := placement.EdgeCenter(monitor, window, s.margin(margin), side)
	s.log.Debug("resolved edge position", zap.String("mode", mode),
		zap.Int("x", pos.X), zap.Int("y", pos.Y))

	return s.apply(mode, pos)
}

// CenterPanel centers the panel using the host's native primitive.
func (s *Service) CenterPanel() error {
	s.log.Info("center panel invoked")

	if err := s.host.Center(); err != nil {
		return fmt.Errorf("failed to center panel: %w", err)
	}

	// Record the arithmetic equivalent so history can step back here.
	if monitor, window, err := s.geometry(); err == nil {
		s.history.Push("center", placement.Center(monitor, window))
	}

	s.setLastMode("center")
	s.raise()
	return nil
}

// ApplyMode positions the panel for the named mode, preferring a saved custom
// position over the anchor computation.
func (s *Service) ApplyMode(mode string) error {
	if pos, ok, err := s.CustomPosition(mode); err != nil {
		return err
	} else if ok {
		s.log.Info("applying custom position", zap.String("mode", mode),
			zap.Int("x", pos.X), zap.Int("y", pos.Y))
		return s.apply(mode, pos)
	}

	switch mode {
	case "top":
		return s.PositionTopCenter()
	case "left":
		return s.PositionLeftCenter(nil)
	case "right":
		return s.PositionRightCenter(nil)
	case "center":
		return s.CenterPanel()
	default:
		return fmt.Errorf("unknown placement mode %q", mode)
	}
}

// Reapply repositions the panel to the last applied mode, falling back to
// the configured default. Used after monitor geometry changes.
func (s *Service) Reapply() error {
	s.mu.Lock()
	mode := s.lastMode
	s.mu.Unlock()

	if mode == "" {
		mode = s.config.Get().Panel.DefaultMode
	}
	if mode == "" {
		mode = "top"
	}

	s.log.Info("reapplying placement", zap.String("mode", mode))
	return s.ApplyMode(mode)
}

// RestorePrevious re-applies the placement before the current one.
func (s *Service) RestorePrevious() error {
	prev, ok := s.history.Previous()
	if !ok {
		return fmt.Errorf("no previous placement to restore")
	}

	s.log.Info("restoring previous placement", zap.String("mode", prev.Mode),
		zap.Int("x", prev.Pos.X), zap.Int("y", prev.Pos.Y))

	return s.apply(prev.Mode, prev.Pos)
}

// SaveCustomPosition persists a user-chosen position for the mode.
func (s *Service) SaveCustomPosition(mode string, x, y int) error {
	s.log.Info("saving custom position", zap.String("mode", mode),
		zap.Int("x", x), zap.Int("y", y))

	if err := s.store.Set(customPositionKey(mode), placement.Point{X: x, Y: y}); err != nil {
		return fmt.Errorf("failed to store custom position: %w", err)
	}
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// CustomPosition returns the saved position for the mode, if any.
func (s *Service) CustomPosition(mode string) (placement.Point, bool, error) {
	var pos placement.Point
	ok, err := s.store.Get(customPositionKey(mode), &pos)
	if err != nil {
		return placement.Point{}, false, fmt.Errorf("failed to read custom position: %w", err)
	}
	return pos, ok, nil
}

// ClearCustomPosition removes the saved position for the mode.
func (s *Service) ClearCustomPosition(mode string) error {
	s.log.Info("clearing custom position", zap.String("mode", mode))

	s.store.Delete(customPositionKey(mode))
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// HasCustomPosition reports whether a custom position is saved for the mode.
func (s *Service) HasCustomPosition(mode string) bool {
	return s.store.Has(customPositionKey(mode))
}

// ShowAndFocus makes the panel visible, focused, and on top, and tells the
// frontend to expand.
func (s *Service) ShowAndFocus() error {
	if err := s.host.Show(); err != nil {
		return fmt.Errorf("failed to show panel: %w", err)
	}

	s.bestEffort("focus", s.host.Focus)
	s.bestEffort("set always-on-top", func() error {
		return s.host.SetAlwaysOnTop(s.config.Get().Panel.AlwaysOnTop)
	})
	s.host.Emit(EventShouldExpand)

	return nil
}

// Hide hides the panel.
func (s *Service) Hide() error {
	if err := s.host.Hide(); err != nil {
		return fmt.Errorf("failed to hide panel: %w", err)
	}
	return nil
}

// ToggleCollapsed flips the collapsed state, notifies the frontend, and
// returns the new state.
func (s *Service) ToggleCollapsed() bool {
	s.mu.Lock()
	s.collapsed = !s.collapsed
	collapsed := s.collapsed
	s.mu.Unlock()

	s.log.Info("toggled collapsed state", zap.Bool("collapsed", collapsed))
	s.host.Emit(EventToggle, collapsed)

	return collapsed
}

// IsCollapsed returns the current collapsed state.
func (s *Service) IsCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed
}

// LastMode returns the most recently applied placement mode.
func (s *Service) LastMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMode
}

// History exposes the placement history ring.
func (s *Service) History() *history.Ring {
	return s.history
}

// geometry fetches the current monitor and window extents from the host.
func (s *Service) geometry() (placement.Rect, placement.Size, error) {
	window, err := s.host.WindowSize()
	if err != nil {
		return placement.Rect{}, placement.Size{}, fmt.Errorf("failed to get window size: %w", err)
	}

	monitor, err := s.host.CurrentMonitor()
	if err != nil {
		return placement.Rect{}, placement.Size{}, fmt.Errorf("failed to get monitor geometry: %w", err)
	}

	s.log.Debug("queried geometry",
		zap.Int("monitor_w", monitor.Width), zap.Int("monitor_h", monitor.Height),
		zap.Int("monitor_x", monitor.X), zap.Int("monitor_y", monitor.Y),
		zap.Int("window_w", window.Width), zap.Int("window_h", window.Height))

	return monitor, window, nil
}

// apply moves the window and raises it. Moving is critical; raising is
// best-effort.
func (s *Service) apply(mode string, pos placement.Point) error {
	if err := s.host.SetPosition(pos); err != nil {
		return fmt.Errorf("failed to set panel position: %w", err)
	}

	s.history.Push(mode, pos)
	s.setLastMode(mode)
	s.raise()

	return nil
}

func (s *Service) raise() {
	s.bestEffort("show", s.host.Show)
	s.bestEffort("set always-on-top", func() error {
		return s.host.SetAlwaysOnTop(s.config.Get().Panel.AlwaysOnTop)
	})
	s.bestEffort("focus", s.host.Focus)
}

// bestEffort runs a side effect whose failure is logged but never propagated.
func (s *Service) bestEffort(name string, fn func() error) {
	if err := fn(); err != nil {
		s.log.Debug("best-effort operation failed", zap.String("op", name), zap.Error(err))
	}
}

func (s *Service) setLastMode(mode string) {
	s.mu.Lock()
	s.lastMode = mode
	s.mu.Unlock()
}

// margin resolves the effective margin: an explicit override wins, then the
// configured value, then the default.
func (s *Service) margin(override *int) int {
	if override != nil {
		return *override
	}
	if m := s.config.Get().Panel.Margin; m > 0 {
		return m
	}
	return placement.DefaultMargin
}

func customPositionKey(mode string) string {
	return customPositionKeyPrefix + mode
}

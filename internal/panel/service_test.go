package panel

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"panel-shell/internal/config"
	"panel-shell/internal/placement"
	"panel-shell/internal/store"
)

// fakeHost records the calls the service makes against the window host.
type fakeHost struct {
	window  placement.Size
	monitor placement.Rect

	windowErr  error
	monitorErr error
	setPosErr  error
	focusErr   error

	positions []placement.Point
	shown     int
	hidden    int
	focused   int
	centered  int
	onTop     []bool
	events    []string
}

func (h *fakeHost) WindowSize() (placement.Size, error) {
	return h.window, h.windowErr
}

func (h *fakeHost) CurrentMonitor() (placement.Rect, error) {
	return h.monitor, h.monitorErr
}

func (h *fakeHost) SetPosition(p placement.Point) error {
	if h.setPosErr != nil {
		return h.setPosErr
	}
	h.positions = append(h.positions, p)
	return nil
}

func (h *fakeHost) Show() error  { h.shown++; return nil }
func (h *fakeHost) Hide() error  { h.hidden++; return nil }
func (h *fakeHost) Focus() error { h.focused++; return h.focusErr }

func (h *fakeHost) SetAlwaysOnTop(onTop bool) error {
	h.onTop = append(h.onTop, onTop)
	return nil
}

func (h *fakeHost) Center() error { h.centered++; return nil }

func (h *fakeHost) Emit(event string, payload ...interface{}) {
	h.events = append(h.events, event)
}

func newTestService(t *testing.T, host *fakeHost) *Service {
	t.Helper()

	tmpDir := t.TempDir()
	st, err := store.Open(filepath.Join(tmpDir, "settings.json"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	cfg, err := config.NewAt(filepath.Join(tmpDir, "config.json"))
	if err != nil {
		t.Fatalf("config.NewAt failed: %v", err)
	}

	return New(host, st, cfg, zap.NewNop(), false)
}

func defaultHost() *fakeHost {
	return &fakeHost{
		window:  placement.Size{Width: 420, Height: 110},
		monitor: placement.Rect{Point: placement.Point{X: 0, Y: 0}, Size: placement.Size{Width: 1920, Height: 1080}},
	}
}

func TestPositionTopCenter(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.PositionTopCenter(); err != nil {
		t.Fatalf("PositionTopCenter failed: %v", err)
	}

	if len(host.positions) != 1 {
		t.Fatalf("expected one SetPosition call, got %d", len(host.positions))
	}
	if got := host.positions[0]; got.X != 750 || got.Y != 40 {
		t.Errorf("expected (750, 40), got (%d, %d)", got.X, got.Y)
	}
	if host.shown == 0 {
		t.Error("expected panel to be shown after positioning")
	}
	if svc.LastMode() != "top" {
		t.Errorf("expected last mode 'top', got %q", svc.LastMode())
	}
}

func TestPositionEdges_MarginOverride(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	margin := 100
	if err := svc.PositionRightCenter(&margin); err != nil {
		t.Fatalf("PositionRightCenter failed: %v", err)
	}
	if err := svc.PositionLeftCenter(nil); err != nil {
		t.Fatalf("PositionLeftCenter failed: %v", err)
	}

	if len(host.positions) != 2 {
		t.Fatalf("expected two SetPosition calls, got %d", len(host.positions))
	}
	// right: 1500 - 100 = 1400; left: default margin 40
	if host.positions[0].X != 1400 {
		t.Errorf("expected right X=1400, got %d", host.positions[0].X)
	}
	if host.positions[1].X != 40 {
		t.Errorf("expected left X=40, got %d", host.positions[1].X)
	}
}

func TestGeometryErrorsPropagate(t *testing.T) {
	host := defaultHost()
	host.monitorErr = errors.New("no monitor found")
	svc := newTestService(t, host)

	if err := svc.PositionTopCenter(); err == nil {
		t.Error("expected monitor lookup failure to propagate")
	}

	host.monitorErr = nil
	host.windowErr = errors.New("window not found")
	if err := svc.PositionTopCenter(); err == nil {
		t.Error("expected window lookup failure to propagate")
	}
}

func TestFocusFailureIsBestEffort(t *testing.T) {
	host := defaultHost()
	host.focusErr = errors.New("focus denied")
	svc := newTestService(t, host)

	if err := svc.PositionTopCenter(); err != nil {
		t.Errorf("focus failure must not propagate, got: %v", err)
	}
}

func TestCustomPositionRoundTrip(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if svc.HasCustomPosition("top") {
		t.Error("expected no custom position initially")
	}

	if err := svc.SaveCustomPosition("top", 300, 70); err != nil {
		t.Fatalf("SaveCustomPosition failed: %v", err)
	}
	if !svc.HasCustomPosition("top") {
		t.Error("expected custom position after save")
	}

	pos, ok, err := svc.CustomPosition("top")
	if err != nil {
		t.Fatalf("CustomPosition failed: %v", err)
	}
	if !ok || pos.X != 300 || pos.Y != 70 {
		t.Errorf("expected (300, 70), got %+v ok=%v", pos, ok)
	}

	if err := svc.ClearCustomPosition("top"); err != nil {
		t.Fatalf("ClearCustomPosition failed: %v", err)
	}
	if svc.HasCustomPosition("top") {
		t.Error("expected custom position cleared")
	}
}

func TestApplyMode_PrefersCustomPosition(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.SaveCustomPosition("top", 5, 6); err != nil {
		t.Fatalf("SaveCustomPosition failed: %v", err)
	}

	if err := svc.ApplyMode("top"); err != nil {
		t.Fatalf("ApplyMode failed: %v", err)
	}

	if len(host.positions) != 1 {
		t.Fatalf("expected one SetPosition call, got %d", len(host.positions))
	}
	if got := host.positions[0]; got.X != 5 || got.Y != 6 {
		t.Errorf("expected custom (5, 6), got (%d, %d)", got.X, got.Y)
	}
}

func TestApplyMode_FallsBackToAnchor(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.ApplyMode("right"); err != nil {
		t.Fatalf("ApplyMode failed: %v", err)
	}

	if got := host.positions[0]; got.X != 1460 || got.Y != 485 {
		t.Errorf("expected (1460, 485), got (%d, %d)", got.X, got.Y)
	}
}

func TestApplyMode_UnknownMode(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.ApplyMode("diagonal"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestApplyMode_Center(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.ApplyMode("center"); err != nil {
		t.Fatalf("ApplyMode failed: %v", err)
	}
	if host.centered != 1 {
		t.Errorf("expected one native Center call, got %d", host.centered)
	}
}

func TestShowAndFocusEmitsExpand(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.ShowAndFocus(); err != nil {
		t.Fatalf("ShowAndFocus failed: %v", err)
	}

	if host.shown != 1 || host.focused != 1 {
		t.Errorf("expected show and focus, got shown=%d focused=%d", host.shown, host.focused)
	}
	if len(host.events) != 1 || host.events[0] != EventShouldExpand {
		t.Errorf("expected %q event, got %v", EventShouldExpand, host.events)
	}
}

func TestToggleCollapsed(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if svc.IsCollapsed() {
		t.Error("expected expanded initial state")
	}

	if !svc.ToggleCollapsed() {
		t.Error("expected collapsed after first toggle")
	}
	if svc.ToggleCollapsed() {
		t.Error("expected expanded after second toggle")
	}

	if len(host.events) != 2 || host.events[0] != EventToggle {
		t.Errorf("expected two %q events, got %v", EventToggle, host.events)
	}
}

func TestRestorePrevious(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.RestorePrevious(); err == nil {
		t.Error("expected error with empty history")
	}

	if err := svc.PositionTopCenter(); err != nil {
		t.Fatalf("PositionTopCenter failed: %v", err)
	}
	if err := svc.PositionRightCenter(nil); err != nil {
		t.Fatalf("PositionRightCenter failed: %v", err)
	}

	if err := svc.RestorePrevious(); err != nil {
		t.Fatalf("RestorePrevious failed: %v", err)
	}

	last := host.positions[len(host.positions)-1]
	if last.X != 750 || last.Y != 40 {
		t.Errorf("expected restored (750, 40), got (%d, %d)", last.X, last.Y)
	}
}

func TestReapply_UsesLastMode(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.PositionRightCenter(nil); err != nil {
		t.Fatalf("PositionRightCenter failed: %v", err)
	}

	// Monitor shrinks; reapply should recompute for the same mode.
	host.monitor = placement.Rect{Point: placement.Point{X: 0, Y: 0}, Size: placement.Size{Width: 1280, Height: 720}}
	if err := svc.Reapply(); err != nil {
		t.Fatalf("Reapply failed: %v", err)
	}

	last := host.positions[len(host.positions)-1]
	// available width 860, right margin 40 -> 820; available height 610 -> 305
	if last.X != 820 || last.Y != 305 {
		t.Errorf("expected (820, 305), got (%d, %d)", last.X, last.Y)
	}
}

func TestReapply_DefaultsToConfiguredMode(t *testing.T) {
	host := defaultHost()
	svc := newTestService(t, host)

	if err := svc.Reapply(); err != nil {
		t.Fatalf("Reapply failed: %v", err)
	}

	// Default mode is "top".
	if got := host.positions[0]; got.X != 750 || got.Y != 40 {
		t.Errorf("expected (750, 40), got (%d, %d)", got.X, got.Y)
	}
}

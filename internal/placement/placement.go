// Package placement computes clamped on-screen positions for the panel
// window. All functions are pure: they take monitor and window geometry in
// physical pixels and return the point at which the window's top-left corner
// should be placed, never letting the window extend off-screen.
package placement

// DefaultMargin is the pixel offset from a screen edge used when the caller
// does not supply one.
const DefaultMargin = 40

// Point is a 2D coordinate in physical pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size holds non-negative physical pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a monitor's usable area: its top-left corner and full extent.
type Rect struct {
	Point
	Size
}

// Anchor names a placement target on the monitor.
type Anchor int

const (
	AnchorTopCenter Anchor = iota
	AnchorLeftCenter
	AnchorRightCenter
	AnchorCenter
)

// String returns the mode name used as a settings-store key suffix.
func (a Anchor) String() string {
	switch a {
	case AnchorTopCenter:
		return "top"
	case AnchorLeftCenter:
		return "left"
	case AnchorRightCenter:
		return "right"
	case AnchorCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Side selects the screen edge for EdgeCenter.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// TopCenter places the window horizontally centered near the top of the
// monitor, margin pixels from the edge. When bottomLeftOrigin is true the
// host reports monitor coordinates with an inverted vertical origin, so the
// desired y is measured from the opposite edge; the clamp keeps the result
// inside the monitor either way.
func TopCenter(monitor Rect, window Size, margin int, bottomLeftOrigin bool) Point {
	availableWidth := monitor.Width - window.Width
	x := clamp(monitor.X+availableWidth/2, monitor.X, monitor.X+availableWidth)

	availableHeight := monitor.Height - window.Height
	desiredY := monitor.Y + margin
	if bottomLeftOrigin {
		desiredY = monitor.Y + availableHeight - margin
	}
	y := clamp(desiredY, monitor.Y, monitor.Y+availableHeight)

	return Point{X: x, Y: y}
}

// EdgeCenter places the window vertically centered, margin pixels from the
// left or right monitor edge.
func EdgeCenter(monitor Rect, window Size, margin int, side Side) Point {
	availableWidth := monitor.Width - window.Width
	desiredX := monitor.X + margin
	if side == SideRight {
		desiredX = monitor.X + availableWidth - margin
	}
	x := clamp(desiredX, monitor.X, monitor.X+availableWidth)

	availableHeight := monitor.Height - window.Height
	y := clamp(monitor.Y+availableHeight/2, monitor.Y, monitor.Y+availableHeight)

	return Point{X: x, Y: y}
}

// Center places the window in the middle of the monitor. Hosts with a native
// center primitive should prefer it; this is the arithmetic fallback.
func Center(monitor Rect, window Size) Point {
	availableWidth := monitor.Width - window.Width
	availableHeight := monitor.Height - window.Height
	return Point{
		X: clamp(monitor.X+availableWidth/2, monitor.X, monitor.X+availableWidth),
		Y: clamp(monitor.Y+availableHeight/2, monitor.Y, monitor.Y+availableHeight),
	}
}

// Compute dispatches to the calculation for the given anchor.
func Compute(anchor Anchor, monitor Rect, window Size, margin int, bottomLeftOrigin bool) Point {
	switch anchor {
	case AnchorLeftCenter:
		return EdgeCenter(monitor, window, margin, SideLeft)
	case AnchorRightCenter:
		return EdgeCenter(monitor, window, margin, SideRight)
	case AnchorCenter:
		return Center(monitor, window)
	default:
		return TopCenter(monitor, window, margin, bottomLeftOrigin)
	}
}

// clamp constrains v to [lo, hi]. An inverted range means the window is
// larger than the monitor on that axis; collapse to lo instead of panicking.
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

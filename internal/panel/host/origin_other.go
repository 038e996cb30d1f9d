//go:build !darwin

package host

// OriginBottomLeft reports whether the host reports monitor coordinates with
// a bottom-left vertical origin. Windows and the Linux backends are
// top-origin.
func OriginBottomLeft() bool {
	return false
}

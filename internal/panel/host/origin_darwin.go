//go:build darwin

package host

// OriginBottomLeft reports whether the host reports monitor coordinates with
// a bottom-left vertical origin. AppKit uses a bottom-left origin natively,
// but the webview host translates to top-left before geometry reaches us, so
// placement math stays top-origin here. Verified against the host, not
// assumed from the OS convention.
func OriginBottomLeft() bool {
	return false
}

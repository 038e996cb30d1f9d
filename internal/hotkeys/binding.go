package hotkeys

import (
	"fmt"
	"sort"
	"strings"
)

// Modifier is a hotkey modifier bitmask (Win32 MOD_* values, reused as the
// canonical encoding on every platform).
type Modifier uint32

const (
	ModAlt     Modifier = 0x0001
	ModControl Modifier = 0x0002
	ModShift   Modifier = 0x0004
	ModSuper   Modifier = 0x0008
)

// Binding describes a parsed global hotkey. Construct only via ParseBinding
// so the normalized form stays consistent.
type Binding struct {
	modifiers  Modifier
	key        uint32
	keyName    string
	normalized string
}

// Modifiers returns the modifier bitmask.
func (b Binding) Modifiers() Modifier { return b.modifiers }

// Key returns the virtual-key code.
func (b Binding) Key() uint32 { return b.key }

// String returns the canonical human-readable binding.
func (b Binding) String() string { return b.normalized }

var modifierNames = map[string]Modifier{
	"alt":     ModAlt,
	"option":  ModAlt,
	"ctrl":    ModControl,
	"control": ModControl,
	"shift":   ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
}

// keyCodes maps key names to virtual-key codes.
var keyCodes = map[string]uint32{
	"space":  0x20,
	"escape": 0x1B,
	"enter":  0x0D,
	"tab":    0x09,
	"up":     0x26,
	"down":   0x28,
	"left":   0x25,
	"right":  0x27,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyCodes[string(c)] = uint32(0x41 + c - 'a')
	}
	for c := '0'; c <= '9'; c++ {
		keyCodes[string(c)] = uint32(0x30 + c - '0')
	}
	for i := 1; i <= 12; i++ {
		keyCodes[fmt.Sprintf("f%d", i)] = uint32(0x70 + i - 1)
	}
}

// ParseBinding parses a binding such as "ctrl+shift+space": zero or more
// modifiers followed by exactly one key, separated by '+'.
func ParseBinding(spec string) (Binding, error) {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")

	var b Binding
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Binding{}, fmt.Errorf("empty token in binding %q", spec)
		}

		if mod, ok := modifierNames[tok]; ok {
			b.modifiers |= mod
			continue
		}

		code, ok := keyCodes[tok]
		if !ok {
			return Binding{}, fmt.Errorf("unknown key %q in binding %q", tok, spec)
		}
		if b.key != 0 {
			return Binding{}, fmt.Errorf("multiple keys in binding %q", spec)
		}
		b.key = code
		b.keyName = tok
	}

	if b.key == 0 {
		return Binding{}, fmt.Errorf("binding %q has no key", spec)
	}

	b.normalized = normalize(b.modifiers, b.keyName)
	return b, nil
}

func normalize(mods Modifier, key string) string {
	var parts []string
	if mods&ModControl != 0 {
		parts = append(parts, "ctrl")
	}
	if mods&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if mods&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if mods&ModSuper != 0 {
		parts = append(parts, "super")
	}
	sort.Strings(parts)
	parts = append(parts, key)
	return strings.Join(parts, "+")
}

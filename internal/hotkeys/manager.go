// Package hotkeys registers global keyboard shortcuts and publishes a tagged
// event when one fires.
package hotkeys

import (
	"fmt"

	"go.uber.org/zap"

	"panel-shell/internal/events"
)

// registration ties a parsed binding to the event it triggers.
type registration struct {
	binding Binding
	kind    events.Kind
}

// Manager holds the hotkey registrations for the process. Bind all hotkeys
// first, then Start the platform listener.
type Manager struct {
	bus  *events.Bus
	log  *zap.Logger
	regs []registration
}

// NewManager creates a hotkey manager publishing to bus.
func NewManager(bus *events.Bus, logger *zap.Logger) *Manager {
	return &Manager{bus: bus, log: logger}
}

// Bind parses spec and registers it to publish kind when pressed.
func (m *Manager) Bind(spec string, kind events.Kind) error {
	binding, err := ParseBinding(spec)
	if err != nil {
		return fmt.Errorf("failed to bind hotkey: %w", err)
	}

	m.regs = append(m.regs, registration{binding: binding, kind: kind})
	m.log.Info("bound hotkey", zap.String("binding", binding.String()), zap.Stringer("event", kind))
	return nil
}

// Bindings returns the normalized forms of all registrations.
func (m *Manager) Bindings() []string {
	out := make([]string, len(m.regs))
	for i, r := range m.regs {
		out[i] = r.binding.String()
	}
	return out
}

func (m *Manager) trigger(idx int) {
	if idx < 0 || idx >= len(m.regs) {
		return
	}
	reg := m.regs[idx]
	m.log.Info("hotkey triggered", zap.String("binding", reg.binding.String()))
	m.bus.Publish(events.Event{Kind: reg.kind})
}

// Package events carries tagged shell events from their sources (hotkeys,
// tray, monitor watcher, second-instance launches) to a single dispatch loop.
package events

import (
	"context"

	"go.uber.org/zap"
)

// Kind tags an event with the action it requests.
type Kind int

const (
	// KindShowPanel shows and focuses the panel.
	KindShowPanel Kind = iota
	// KindToggleCollapse flips the panel's collapsed state.
	KindToggleCollapse
	// KindApplyMode repositions the panel to the named placement mode.
	KindApplyMode
	// KindMonitorChanged reports that the active monitor geometry changed.
	KindMonitorChanged
	// KindQuit shuts the application down.
	KindQuit
)

// String returns the event name for logging.
func (k Kind) String() string {
	switch k {
	case KindShowPanel:
		return "show-panel"
	case KindToggleCollapse:
		return "toggle-collapse"
	case KindApplyMode:
		return "apply-mode"
	case KindMonitorChanged:
		return "monitor-changed"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is a single tagged shell event. Mode is set only for KindApplyMode.
type Event struct {
	Kind Kind
	Mode string
}

// Bus delivers events to one dispatch loop.
type Bus struct {
	ch  chan Event
	log *zap.Logger
}

// NewBus creates a bus with a small buffer. Each event is a one-shot user
// gesture, so a saturated buffer drops rather than blocks the source.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		ch:  make(chan Event, 16),
		log: logger,
	}
}

// Publish enqueues an event without blocking. Dropped events are logged;
// the user can repeat the gesture.
func (b *Bus) Publish(ev Event) {
	select {
	case b.ch <- ev:
	default:
		b.log.Warn("event bus saturated, dropping event", zap.Stringer("kind", ev.Kind))
	}
}

// Run delivers events to handle until ctx is cancelled.
func (b *Bus) Run(ctx context.Context, handle func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.ch:
			b.log.Debug("dispatching event", zap.Stringer("kind", ev.Kind), zap.String("mode", ev.Mode))
			handle(ev)
		}
	}
}

// Package tray wires the system tray icon and menu to the event bus.
package tray

import (
	"context"

	"fyne.io/systray"
	"go.uber.org/zap"

	"panel-shell/internal/events"
)

// Tray owns the system tray icon lifecycle. Menu clicks publish tagged events
// to the bus; the tray never touches the window directly.
type Tray struct {
	bus  *events.Bus
	log  *zap.Logger
	icon []byte
}

// New creates a tray publishing to bus. icon is optional PNG/ICO bytes.
func New(bus *events.Bus, logger *zap.Logger, icon []byte) *Tray {
	return &Tray{bus: bus, log: logger, icon: icon}
}

// Run blocks inside the systray event loop until ctx is cancelled or Quit is
// chosen from the menu.
func (t *Tray) Run(ctx context.Context) {
	systray.Run(func() { t.onReady(ctx) }, t.onExit)
}

func (t *Tray) onReady(ctx context.Context) {
	systray.SetTitle("Panel")
	systray.SetTooltip("Panel — click to show")
	if len(t.icon) > 0 {
		systray.SetIcon(t.icon)
	}

	showItem := systray.AddMenuItem("Show Panel", "Show and focus the panel")
	toggleItem := systray.AddMenuItem("Toggle Collapsed", "Collapse or expand the panel")
	previousItem := systray.AddMenuItem("Previous Position", "Move the panel back to its previous position")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Quit the panel shell")

	t.log.Info("tray ready")

	go func() {
		for {
			select {
			case <-showItem.ClickedCh:
				t.bus.Publish(events.Event{Kind: events.KindShowPanel})
			case <-toggleItem.ClickedCh:
				t.bus.Publish(events.Event{Kind: events.KindToggleCollapse})
			case <-previousItem.ClickedCh:
				t.bus.Publish(events.Event{Kind: events.KindApplyMode, Mode: "previous"})
			case <-quitItem.ClickedCh:
				t.log.Info("quit selected from tray menu")
				t.bus.Publish(events.Event{Kind: events.KindQuit})
				systray.Quit()
				return
			case <-ctx.Done():
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.log.Info("tray exited")
}

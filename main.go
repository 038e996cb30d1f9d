package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"panel-shell/internal/applog"
	"panel-shell/internal/config"
	"panel-shell/internal/events"
	"panel-shell/internal/hotkeys"
	"panel-shell/internal/panel"
	"panel-shell/internal/panel/host"
	"panel-shell/internal/placement"
	"panel-shell/internal/store"
	"panel-shell/internal/tray"
	"panel-shell/internal/watcher"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed assets/icon.png
var trayIcon []byte

const appTitle = "Panel"

// App is the shell backend bound to the frontend.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	log     *zap.Logger
	config  *config.Service
	store   *store.Store
	bus     *events.Bus
	panel   *panel.Service
	hotkeys *hotkeys.Manager
	watcher *watcher.Service
	tray    *tray.Tray
}

// NewApp creates a new App application struct
func NewApp(cfg *config.Service, logger *zap.Logger) *App {
	return &App{config: cfg, log: logger}
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	// Initialize settings store
	st, err := store.OpenDefault(".panel-shell", "settings.json")
	if err != nil {
		a.log.Error("failed to open settings store", zap.Error(err))
		os.Exit(1)
	}
	a.store = st

	windowHost := host.NewWails(ctx, appTitle)
	a.panel = panel.New(windowHost, st, a.config, a.log.Named("panel"), host.OriginBottomLeft())

	runCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	// Single dispatch loop: every trigger source publishes tagged events here.
	a.bus = events.NewBus(a.log.Named("events"))
	go a.bus.Run(runCtx, a.handleEvent)

	cfg := a.config.Get()

	// Global hotkeys are best-effort; the tray and frontend still work
	// without them.
	a.hotkeys = hotkeys.NewManager(a.bus, a.log.Named("hotkeys"))
	for _, spec := range cfg.Hotkeys.Show {
		if err := a.hotkeys.Bind(spec, events.KindShowPanel); err != nil {
			a.log.Warn("skipping show hotkey", zap.String("spec", spec), zap.Error(err))
		}
	}
	if cfg.Hotkeys.ToggleCollapse != "" {
		if err := a.hotkeys.Bind(cfg.Hotkeys.ToggleCollapse, events.KindToggleCollapse); err != nil {
			a.log.Warn("skipping toggle hotkey", zap.String("spec", cfg.Hotkeys.ToggleCollapse), zap.Error(err))
		}
	}
	if err := a.hotkeys.Start(runCtx); err != nil {
		a.log.Warn("global hotkeys unavailable", zap.Error(err))
	}

	if cfg.WatcherIntervalSeconds > 0 {
		a.watcher = watcher.New(windowHost, a.bus, a.log.Named("watcher"),
			time.Duration(cfg.WatcherIntervalSeconds)*time.Second)
		a.watcher.Start()
	}

	a.tray = tray.New(a.bus, a.log.Named("tray"), trayIcon)
	go a.tray.Run(runCtx)

	// Auto-show panel on launch for first-run convenience
	if cfg.Panel.ShowOnLaunch {
		if err := a.panel.ApplyMode(cfg.Panel.DefaultMode); err != nil {
			a.log.Warn("initial placement failed", zap.Error(err))
		}
		if err := a.panel.ShowAndFocus(); err != nil {
			a.log.Warn("initial show failed", zap.Error(err))
		}
	}
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.store != nil {
		if err := a.store.Save(); err != nil {
			a.log.Warn("failed to flush settings store", zap.Error(err))
		}
	}
	if a.config != nil {
		if err := a.config.Save(); err != nil {
			a.log.Warn("failed to flush config", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// handleEvent is the single dispatch point for tagged shell events.
func (a *App) handleEvent(ev events.Event) {
	var err error
	switch ev.Kind {
	case events.KindShowPanel:
		err = a.panel.ShowAndFocus()
	case events.KindToggleCollapse:
		a.panel.ToggleCollapsed()
	case events.KindApplyMode:
		if ev.Mode == "previous" {
			err = a.panel.RestorePrevious()
		} else {
			err = a.panel.ApplyMode(ev.Mode)
		}
	case events.KindMonitorChanged:
		err = a.panel.Reapply()
	case events.KindQuit:
		a.log.Info("quit requested; exiting")
		wailsruntime.Quit(a.ctx)
	}

	if err != nil {
		a.log.Warn("event handling failed", zap.Stringer("kind", ev.Kind), zap.Error(err))
	}
}

// onSecondInstanceLaunch surfaces the already-running panel when the user
// launches the app again.
func (a *App) onSecondInstanceLaunch(data options.SecondInstanceData) {
	a.log.Info("second instance launched", zap.Strings("args", data.Args))
	a.bus.Publish(events.Event{Kind: events.KindShowPanel})
}

// Frontend API methods (these are exposed to the frontend)

// PositionTopCenter places the panel horizontally centered near the top edge.
func (a *App) PositionTopCenter() error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.PositionTopCenter()
}

// PositionLeftCenter places the panel near the left edge; a nil margin uses
// the configured default.
func (a *App) PositionLeftCenter(margin *int) error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.PositionLeftCenter(margin)
}

// PositionRightCenter places the panel near the right edge; a nil margin
// uses the configured default.
func (a *App) PositionRightCenter(margin *int) error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.PositionRightCenter(margin)
}

// CenterPanel centers the panel on its monitor.
func (a *App) CenterPanel() error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.CenterPanel()
}

// ApplyMode positions the panel for a named mode, honoring saved custom
// positions.
func (a *App) ApplyMode(mode string) error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.ApplyMode(mode)
}

// SaveCustomPosition persists a user-chosen position for a placement mode.
func (a *App) SaveCustomPosition(mode string, x, y int) error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.SaveCustomPosition(mode, x, y)
}

// GetCustomPosition returns the saved position for a mode, or nil when none
// is saved.
func (a *App) GetCustomPosition(mode string) (*placement.Point, error) {
	if a.panel == nil {
		return nil, fmt.Errorf("panel service not available")
	}

	pos, ok, err := a.panel.CustomPosition(mode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &pos, nil
}

// ClearCustomPosition removes the saved position for a mode.
func (a *App) ClearCustomPosition(mode string) error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.ClearCustomPosition(mode)
}

// HasCustomPosition reports whether a custom position is saved for a mode.
func (a *App) HasCustomPosition(mode string) bool {
	if a.panel == nil {
		return false
	}
	return a.panel.HasCustomPosition(mode)
}

// ToggleCollapsed flips the collapsed state and returns the new state.
func (a *App) ToggleCollapsed() bool {
	if a.panel == nil {
		return false
	}
	return a.panel.ToggleCollapsed()
}

// ShowAndFocus shows and focuses the panel.
func (a *App) ShowAndFocus() error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.ShowAndFocus()
}

// HidePanel hides the panel.
func (a *App) HidePanel() error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.Hide()
}

// RestorePrevious moves the panel back to its previous position.
func (a *App) RestorePrevious() error {
	if a.panel == nil {
		return fmt.Errorf("panel service not available")
	}
	return a.panel.RestorePrevious()
}

// DebugLog forwards a webview console line into the application log.
func (a *App) DebugLog(level, message string) {
	applog.Forward(a.log, strings.ToLower(level), strings.TrimSpace(message))
}

func main() {
	// Configuration decides window geometry and log level, so it loads first.
	cfgSvc, err := config.New()
	if err != nil {
		fmt.Printf("Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	cfg := cfgSvc.Get()

	logger, err := applog.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	app := NewApp(cfgSvc, logger)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  appTitle,
		Width:  cfg.Panel.Width,
		Height: cfg.Panel.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:         true,
		DisableResize:     true,
		AlwaysOnTop:       cfg.Panel.AlwaysOnTop,
		StartHidden:       !cfg.Panel.ShowOnLaunch,
		HideWindowOnClose: true, // close gesture hides the panel instead of quitting
		BackgroundColour:  &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Logger:     applog.NewWailsAdapter(logger),
		OnStartup:  app.OnStartup,
		OnShutdown: app.OnShutdown,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               "e2b1c0fa-panel-shell",
			OnSecondInstanceLaunch: app.onSecondInstanceLaunch,
		},
		Bind: []interface{}{app},
	})

	if err != nil {
		logger.Error("error starting application", zap.Error(err))
		os.Exit(1)
	}
}

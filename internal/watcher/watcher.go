// Package watcher polls the active monitor's geometry and reports changes so
// the shell can re-place the panel after a resolution switch or monitor swap.
package watcher

import (
	"time"

	"go.uber.org/zap"

	"panel-shell/internal/events"
	"panel-shell/internal/placement"
)

// MonitorSource supplies the current monitor geometry.
type MonitorSource interface {
	CurrentMonitor() (placement.Rect, error)
}

// Service polls a MonitorSource on a fixed interval.
type Service struct {
	source   MonitorSource
	bus      *events.Bus
	log      *zap.Logger
	interval time.Duration
	stopChan chan struct{}
	running  bool

	last     placement.Rect
	haveLast bool
}

// New creates a watcher. A non-positive interval defaults to 5 seconds.
func New(source MonitorSource, bus *events.Bus, logger *zap.Logger, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Service{
		source:   source,
		bus:      bus,
		log:      logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins polling in the background.
func (s *Service) Start() {
	if s.running {
		return
	}

	s.running = true
	go s.pollLoop()
	s.log.Info("monitor watcher started", zap.Duration("interval", s.interval))
}

// Stop stops polling.
func (s *Service) Stop() {
	if !s.running {
		return
	}

	s.running = false
	close(s.stopChan)
	s.log.Info("monitor watcher stopped")
}

// IsRunning reports whether the watcher is polling.
func (s *Service) IsRunning() bool {
	return s.running
}

func (s *Service) pollLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

func (s *Service) poll() {
	monitor, err := s.source.CurrentMonitor()
	if err != nil {
		// Transient lookup failures are expected around display changes.
		s.log.Debug("monitor lookup failed", zap.Error(err))
		return
	}

	if s.haveLast && monitor != s.last {
		s.log.Info("monitor geometry changed",
			zap.Int("width", monitor.Width), zap.Int("height", monitor.Height))
		s.bus.Publish(events.Event{Kind: events.KindMonitorChanged})
	}

	s.last = monitor
	s.haveLast = true
}

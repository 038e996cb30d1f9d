package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"panel-shell/internal/events"
	"panel-shell/internal/placement"
)

type fakeSource struct {
	mu      sync.Mutex
	monitor placement.Rect
	err     error
}

func (f *fakeSource) CurrentMonitor() (placement.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.monitor, f.err
}

func (f *fakeSource) set(r placement.Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monitor = r
}

func TestPoll_PublishesOnChange(t *testing.T) {
	src := &fakeSource{monitor: placement.Rect{Size: placement.Size{Width: 1920, Height: 1080}}}
	bus := events.NewBus(zap.NewNop())
	w := New(src, bus, zap.NewNop(), time.Hour)

	// First poll establishes the baseline, no event.
	w.poll()

	src.set(placement.Rect{Size: placement.Size{Width: 1280, Height: 720}})
	w.poll()

	got := make(chan events.Event, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx, func(ev events.Event) {
		got <- ev
		cancel()
	})

	select {
	case ev := <-got:
		if ev.Kind != events.KindMonitorChanged {
			t.Errorf("expected monitor-changed event, got %v", ev.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for monitor-changed event")
	}
}

func TestPoll_NoEventWhenUnchanged(t *testing.T) {
	src := &fakeSource{monitor: placement.Rect{Size: placement.Size{Width: 1920, Height: 1080}}}
	bus := events.NewBus(zap.NewNop())
	w := New(src, bus, zap.NewNop(), time.Hour)

	w.poll()
	w.poll()
	w.poll()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fired := make(chan struct{}, 1)
	go bus.Run(ctx, func(events.Event) {
		fired <- struct{}{}
	})

	select {
	case <-fired:
		t.Error("unexpected event for unchanged monitor")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPoll_IgnoresLookupErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("no monitor found")}
	bus := events.NewBus(zap.NewNop())
	w := New(src, bus, zap.NewNop(), time.Hour)

	// Must not panic or publish.
	w.poll()

	if w.haveLast {
		t.Error("failed poll must not establish a baseline")
	}
}

func TestStartStop(t *testing.T) {
	src := &fakeSource{monitor: placement.Rect{Size: placement.Size{Width: 1920, Height: 1080}}}
	bus := events.NewBus(zap.NewNop())
	w := New(src, bus, zap.NewNop(), 10*time.Millisecond)

	w.Start()
	if !w.IsRunning() {
		t.Error("expected watcher to be running after Start")
	}
	w.Start() // second Start is a no-op

	w.Stop()
	if w.IsRunning() {
		t.Error("expected watcher to be stopped after Stop")
	}
	w.Stop() // second Stop is a no-op
}

func TestNew_DefaultInterval(t *testing.T) {
	w := New(&fakeSource{}, events.NewBus(zap.NewNop()), zap.NewNop(), 0)
	if w.interval != 5*time.Second {
		t.Errorf("expected default interval 5s, got %v", w.interval)
	}
}

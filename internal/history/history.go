// Package history keeps a bounded record of recently applied panel
// placements so the shell can step back to the previous one.
package history

import (
	"sync"
	"time"

	"panel-shell/internal/placement"
)

// Entry records one applied placement.
type Entry struct {
	Mode      string
	Pos       placement.Point
	AppliedAt time.Time
}

// Ring is a mutex-guarded bounded list of placements, newest last.
type Ring struct {
	mu      sync.RWMutex
	maxSize int
	entries []Entry
}

// New creates a ring holding at most maxSize entries.
func New(maxSize int) *Ring {
	if maxSize <= 0 {
		maxSize = 20 // Default history depth
	}

	return &Ring{
		maxSize: maxSize,
		entries: make([]Entry, 0, maxSize),
	}
}

// Push records an applied placement. A repeat of the newest entry only
// refreshes its timestamp instead of growing the ring.
func (r *Ring) Push(mode string, pos placement.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.entries); n > 0 {
		last := &r.entries[n-1]
		if last.Mode == mode && last.Pos == pos {
			last.AppliedAt = time.Now()
			return
		}
	}

	r.entries = append(r.entries, Entry{Mode: mode, Pos: pos, AppliedAt: time.Now()})
	if len(r.entries) > r.maxSize {
		r.entries = r.entries[len(r.entries)-r.maxSize:]
	}
}

// Last returns the newest entry.
func (r *Ring) Last() (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Previous returns the entry before the newest one.
func (r *Ring) Previous() (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) < 2 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-2], true
}

// Len returns the number of recorded entries.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all entries.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}

// Package playback decouples segment-click-to-seek from the audio player's
// control surface. The player and the segment view mount and unmount
// independently; the bridge is the handle object their common owner passes to
// both sides, replacing the old single global seek slot.
package playback

import (
	"sync"
	"sync/atomic"
)

// SeekFunc moves playback to the given position (milliseconds) and resumes.
type SeekFunc func(ms int64)

// Bridge carries the current playback position from the player to the segment
// view and seek requests back the other way. The position is monotonic
// non-decreasing while playing and may jump on seek.
type Bridge struct {
	timeMs atomic.Int64

	mu   sync.RWMutex
	seek SeekFunc
}

// New creates an unbound bridge.
func New() *Bridge {
	return &Bridge{}
}

// SetTime records the current playback position. Called by the player on
// every time-update signal.
func (b *Bridge) SetTime(ms int64) {
	b.timeMs.Store(ms)
}

// Time returns the last reported playback position.
func (b *Bridge) Time() int64 {
	return b.timeMs.Load()
}

// BindSeeker registers the player's seek function. Rebinding replaces the
// previous registration; the player must rebind whenever it remounts.
func (b *Bridge) BindSeeker(fn SeekFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seek = fn
}

// UnbindSeeker removes the registration. The player calls this on unmount so
// the slot is never left pointing at a torn-down instance.
func (b *Bridge) UnbindSeeker() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seek = nil
}

// Seek forwards the request to the bound player. Without a bound player it is
// a no-op, not an error.
func (b *Bridge) Seek(ms int64) {
	b.mu.RLock()
	fn := b.seek
	b.mu.RUnlock()
	if fn != nil {
		fn(ms)
	}
}

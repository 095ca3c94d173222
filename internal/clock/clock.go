// Package clock provides the time source used everywhere the server needs
// "now": a system clock for normal operation and an admin-adjustable virtual
// clock that lets operators rehearse time-dependent behavior (vote opening,
// "live now" markers) without waiting for real event time.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock is the time source injected into components that need the current
// time. Injecting it keeps time-dependent code deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock delegates to the standard library.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// snapshot is one immutable (override, anchor) pair. The pair is always
// swapped as a unit: a reader can never combine a new override with an old
// anchor, which would corrupt the elapsed-time delta.
type snapshot struct {
	// override is the simulated "logical now" installed by an admin.
	override time.Time
	// hasOverride distinguishes "no simulation" from a zero override.
	hasOverride bool
	// anchor is the real wall-clock time at which this snapshot was
	// installed. Elapsed real time since anchor is added to override so
	// simulated time advances at the normal rate.
	anchor time.Time
}

// VirtualClock is a rate-preserving simulated clock. With no override it
// reports real time. With an override T installed at real time A it reports
// T + (now - A): the epoch jumps, the rate does not.
//
// Safe for concurrent use; reads are lock-free.
type VirtualClock struct {
	state atomic.Pointer[snapshot]

	// realNow is the real-time source. Overridable in tests.
	realNow func() time.Time
}

// NewVirtualClock returns a virtual clock tracking real time with no
// override installed.
func NewVirtualClock() *VirtualClock {
	return newVirtualClock(time.Now)
}

func newVirtualClock(realNow func() time.Time) *VirtualClock {
	c := &VirtualClock{realNow: realNow}
	c.state.Store(&snapshot{anchor: realNow()})
	return c
}

// Now returns the current logical time.
func (c *VirtualClock) Now() time.Time {
	s := c.state.Load()
	if !s.hasOverride {
		return c.realNow()
	}
	return s.override.Add(c.realNow().Sub(s.anchor))
}

// SetOverride installs a new simulated time, or clears the simulation when
// t is nil. The (override, anchor) pair is replaced atomically and the new
// basis is visible to every subsequent Now call; between concurrent admin
// calls the last writer wins.
func (c *VirtualClock) SetOverride(t *time.Time) {
	s := &snapshot{anchor: c.realNow()}
	if t != nil {
		s.override = *t
		s.hasOverride = true
	}
	c.state.Store(s)
}

// Override returns the installed override, if any. The returned time is the
// override as installed, not advanced by elapsed real time; use Now for the
// current logical time.
func (c *VirtualClock) Override() (time.Time, bool) {
	s := c.state.Load()
	return s.override, s.hasOverride
}

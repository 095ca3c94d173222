// Package vote decides whether rating submissions for a session are
// currently accepted.
package vote

import (
	"time"

	"github.com/isfaaghyth/kotlinconf-app/internal/clock"
)

// Verdict is the gate decision for a rating submission. TooEarly is an
// expected outcome, not an error: the API maps it to a distinguished
// "come back later" status so clients can explain when voting opens.
type Verdict int

const (
	// VerdictOpen means the session has started and votes are accepted.
	VerdictOpen Verdict = iota
	// VerdictTooEarly means the session has not started yet.
	VerdictTooEarly
)

func (v Verdict) String() string {
	switch v {
	case VerdictOpen:
		return "open"
	case VerdictTooEarly:
		return "too-early"
	default:
		return "unknown"
	}
}

// Open reports whether voting is open for a session starting at startsAt,
// as observed at now. Voting opens exactly at the scheduled start
// (inclusive) and never closes again: ratings may be revised any time after
// the session begins.
func Open(startsAt, now time.Time) bool {
	return !now.Before(startsAt)
}

// Gate evaluates submissions against an injected clock, so the demo time
// override shifts vote opening along with everything else.
type Gate struct {
	clock clock.Clock
}

// NewGate returns a gate reading time from c.
func NewGate(c clock.Clock) *Gate {
	return &Gate{clock: c}
}

// Check returns the verdict for a session starting at startsAt. hasStart is
// false when the schedule has no start time for the session; that is a
// schedule-data fault and the gate fails safe by staying closed.
func (g *Gate) Check(startsAt time.Time, hasStart bool) Verdict {
	if !hasStart {
		return VerdictTooEarly
	}
	if Open(startsAt, g.clock.Now()) {
		return VerdictOpen
	}
	return VerdictTooEarly
}

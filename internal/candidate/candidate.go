// Package candidate tracks a zone's progress from detection toward a confirmed signal.
package candidate

import (
	"fmt"
	"time"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/filter"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/fvg"
)

// State is the lifecycle stage of a candidate.
type State string

const (
	// Untouched is the initial state, set at zone formation.
	Untouched State = "untouched"
	// Touched means price has entered the zone band; the linger clock is running.
	Touched State = "touched"
	// Confirmed is terminal: the reclaim condition held within the window.
	Confirmed State = "confirmed"
	// Expired is terminal: the deadline passed with no confirming bar.
	Expired State = "expired"
)

// Candidate is the mutable record bound one-to-one with a Zone. The zone
// itself never mutates; only the candidate evolves, and its touch timestamp
// is set exactly once.
type Candidate struct {
	Zone        *fvg.Zone
	State       State
	TouchedAt   time.Time
	Deadline    time.Time
	ConfirmedAt time.Time
	Trail       []filter.Result // most recent filter evaluation
}

// New creates a candidate for a freshly formed zone.
func New(zone *fvg.Zone) *Candidate {
	return &Candidate{Zone: zone, State: Untouched}
}

// Terminal reports whether the candidate can no longer transition.
func (c *Candidate) Terminal() bool {
	return c.State == Confirmed || c.State == Expired
}

// Touch records the first band intersection and fixes the deadline.
// Subsequent intersections never move either timestamp.
func (c *Candidate) Touch(ts time.Time, linger time.Duration) {
	if c.State != Untouched {
		panic(fmt.Sprintf("candidate %s: touch from state %s", c.Zone.ID, c.State))
	}
	c.State = Touched
	c.TouchedAt = ts
	c.Deadline = ts.Add(linger)
}

// Confirm moves a touched candidate to its confirmed terminal state.
func (c *Candidate) Confirm(ts time.Time, trail []filter.Result) {
	if c.State != Touched {
		panic(fmt.Sprintf("candidate %s: confirm from state %s", c.Zone.ID, c.State))
	}
	c.State = Confirmed
	c.ConfirmedAt = ts
	c.Trail = trail
}

// Expire moves a touched candidate to its expired terminal state.
func (c *Candidate) Expire() {
	if c.State != Touched {
		panic(fmt.Sprintf("candidate %s: expire from state %s", c.Zone.ID, c.State))
	}
	c.State = Expired
}

// WithinWindow reports whether ts may still confirm. The deadline bound is
// inclusive: a bar stamped exactly at the deadline is inside the window.
func (c *Candidate) WithinWindow(ts time.Time) bool {
	return !ts.After(c.Deadline)
}

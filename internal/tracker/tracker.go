// Package tracker owns the live candidate set and advances zone lifecycles per bar.
package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/candidate"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/emit"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/filter"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/fvg"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/metrics"
)

// Tracker maps zone ids to their single live candidate and applies the
// touch / confirm / expire rules on each execution bar. Candidates are
// processed in formation order (timestamp, then zone id) so that replaying
// an identical feed yields a bit-for-bit identical signal sequence.
type Tracker struct {
	log    zerolog.Logger
	linger time.Duration
	chain  *filter.Chain
	sink   emit.Sink

	live    map[string]*candidate.Candidate
	order   []*candidate.Candidate
	history []*candidate.Candidate
}

// New builds a tracker. linger is the reclaim window after first touch; a
// zero linger degenerates to confirm-on-the-touching-bar behavior.
func New(linger time.Duration, chain *filter.Chain, sink emit.Sink, log zerolog.Logger) *Tracker {
	return &Tracker{
		log:    log,
		linger: linger,
		chain:  chain,
		sink:   sink,
		live:   make(map[string]*candidate.Candidate),
	}
}

// Track registers a freshly formed zone. Exactly one candidate may ever
// exist per zone; a duplicate id is a programming error.
func (t *Tracker) Track(zone *fvg.Zone) {
	if _, ok := t.live[zone.ID]; ok {
		panic(fmt.Sprintf("tracker: duplicate candidate for zone %s", zone.ID))
	}
	cand := candidate.New(zone)
	t.live[zone.ID] = cand

	idx := sort.Search(len(t.order), func(i int) bool {
		z := t.order[i].Zone
		if !z.FormedAt.Equal(zone.FormedAt) {
			return z.FormedAt.After(zone.FormedAt)
		}
		return z.ID > zone.ID
	})
	t.order = append(t.order, nil)
	copy(t.order[idx+1:], t.order[idx:])
	t.order[idx] = cand

	t.log.Debug().Str("zone", zone.ID).Str("direction", string(zone.Direction)).
		Float64("low", zone.Low).Float64("high", zone.High).Msg("zone tracked")
}

// OnBar advances every live candidate against the next execution bar.
// The update is atomic per bar: no partial transition is observable.
func (t *Tracker) OnBar(bar market.Bar, ctx filter.Context) {
	var retired []*candidate.Candidate

	for _, cand := range t.order {
		zone := cand.Zone

		if cand.State == candidate.Untouched && bar.Intersects(zone.Low, zone.High) {
			cand.Touch(bar.Ts, t.linger)
			metrics.TouchesTotal.Inc()
			t.log.Debug().Str("zone", zone.ID).Time("touched_at", bar.Ts).
				Time("deadline", cand.Deadline).Msg("zone touched")
		}

		if cand.State != candidate.Touched {
			continue
		}

		if cand.WithinWindow(bar.Ts) {
			// Re-entrant: filters depend on bar-local volume/EMA values,
			// so the full chain runs again on every bar inside the window.
			admitted, trail := t.chain.Evaluate(zone, ctx)
			cand.Trail = trail
			if admitted {
				cand.Confirm(bar.Ts, trail)
				t.emit(cand, bar)
				retired = append(retired, cand)
			}
			continue
		}

		cand.Expire()
		metrics.CandidatesExpired.Inc()
		t.log.Debug().Str("zone", zone.ID).Time("deadline", cand.Deadline).Msg("candidate expired")
		retired = append(retired, cand)
	}

	if len(retired) > 0 {
		t.retire(retired)
	}
}

func (t *Tracker) emit(cand *candidate.Candidate, bar market.Bar) {
	zone := cand.Zone
	sig := emit.Signal{
		ZoneID:       zone.ID,
		Timeframe:    zone.Timeframe,
		Direction:    zone.Direction,
		ZoneLow:      zone.Low,
		ZoneHigh:     zone.High,
		FormedAt:     zone.FormedAt,
		TouchedAt:    cand.TouchedAt,
		ConfirmedAt:  cand.ConfirmedAt,
		ConfirmPrice: bar.Close,
		Trail:        cand.Trail,
	}
	metrics.SignalsTotal.WithLabelValues(string(zone.Direction)).Inc()
	t.log.Info().Str("zone", zone.ID).Str("direction", string(zone.Direction)).
		Time("touched_at", cand.TouchedAt).Time("confirmed_at", cand.ConfirmedAt).
		Float64("price", bar.Close).Msg("signal confirmed")
	t.sink.Emit(sig)
}

func (t *Tracker) retire(done []*candidate.Candidate) {
	for _, cand := range done {
		delete(t.live, cand.Zone.ID)
		t.history = append(t.history, cand)
	}
	kept := t.order[:0]
	for _, cand := range t.order {
		if !cand.Terminal() {
			kept = append(kept, cand)
		}
	}
	t.order = kept
}

// Live returns the number of non-terminal candidates.
func (t *Tracker) Live() int { return len(t.live) }

// History returns the terminal candidates retained for audit, in retirement order.
func (t *Tracker) History() []*candidate.Candidate {
	out := make([]*candidate.Candidate, len(t.history))
	copy(out, t.history)
	return out
}

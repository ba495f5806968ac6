// Package emit defines the confirmed signal record and the sinks that consume it.
package emit

import (
	"time"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/filter"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/fvg"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

// Signal is the immutable record published when a candidate confirms.
// It carries full provenance: the originating zone, both lifecycle
// timestamps, and the filter trail from the confirming bar.
type Signal struct {
	ZoneID       string           `json:"zone_id"`
	Timeframe    market.Timeframe `json:"timeframe"`
	Direction    fvg.Direction    `json:"direction"`
	ZoneLow      float64          `json:"zone_low"`
	ZoneHigh     float64          `json:"zone_high"`
	FormedAt     time.Time        `json:"formed_at"`
	TouchedAt    time.Time        `json:"touched_at"`
	ConfirmedAt  time.Time        `json:"confirmed_at"`
	ConfirmPrice float64          `json:"confirm_price"`
	Trail        []filter.Result  `json:"filters"`
}

// Sink consumes confirmed signals. Emission is synchronous and at-most-once
// per candidate; a sink that drops a signal is not replayed to.
type Sink interface {
	Emit(Signal)
}

// Tee fans a signal out to several sinks in order.
type Tee []Sink

// Emit implements Sink.
func (t Tee) Emit(sig Signal) {
	for _, s := range t {
		s.Emit(sig)
	}
}

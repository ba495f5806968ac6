// Package market standardizes the OHLCV payloads shared between data loading and the signal engine.
package market

import (
	"errors"
	"fmt"
	"time"
)

// Timeframe labels a bar interval such as "1m" or "4h".
type Timeframe string

// ErrNonMonotonic reports a feed whose timestamps go backwards or repeat.
// This is fatal for the feed: deterministic replay cannot be guaranteed.
var ErrNonMonotonic = errors.New("non-monotonic bar timestamp")

// Bar models a single OHLCV candle. Immutable once produced by the feed.
type Bar struct {
	Ts     time.Time `json:"ts"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Validate checks price positivity and the OHLC relationship.
// A malformed bar is rejected individually; it must never corrupt downstream state.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("non-positive price in bar at %s", b.Ts.Format(time.RFC3339))
	}
	if b.High < b.Low {
		return fmt.Errorf("high %.8f below low %.8f at %s", b.High, b.Low, b.Ts.Format(time.RFC3339))
	}
	if b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("high %.8f below body at %s", b.High, b.Ts.Format(time.RFC3339))
	}
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("low %.8f above body at %s", b.Low, b.Ts.Format(time.RFC3339))
	}
	if b.Volume < 0 {
		return fmt.Errorf("negative volume %.4f at %s", b.Volume, b.Ts.Format(time.RFC3339))
	}
	return nil
}

// Intersects reports whether the bar's range overlaps the price band [low, high].
func (b Bar) Intersects(low, high float64) bool {
	return b.Low <= high && b.High >= low
}

// Series is an ordered bar sequence for one timeframe.
type Series struct {
	Timeframe Timeframe
	Bars      []Bar
}

// Append adds a bar, enforcing strictly increasing timestamps.
func (s *Series) Append(b Bar) error {
	if n := len(s.Bars); n > 0 && !b.Ts.After(s.Bars[n-1].Ts) {
		return fmt.Errorf("%w: %s after %s on %s feed", ErrNonMonotonic,
			b.Ts.Format(time.RFC3339), s.Bars[n-1].Ts.Format(time.RFC3339), s.Timeframe)
	}
	s.Bars = append(s.Bars, b)
	return nil
}

// CheckOrdered verifies a pre-built bar slice keeps strictly increasing timestamps.
func CheckOrdered(tf Timeframe, bars []Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Ts.After(bars[i-1].Ts) {
			return fmt.Errorf("%w: index %d (%s) on %s feed", ErrNonMonotonic,
				i, bars[i].Ts.Format(time.RFC3339), tf)
		}
	}
	return nil
}

package fvg

import (
	"github.com/EmilianoGerez/algorithmic-sub002/internal/indicator"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

// Detector scans structural bars for three-bar imbalances. It is stateless
// beyond the sliding window and its volatility/volume context; bars must be
// pushed strictly in arrival order and there is no look-ahead.
type Detector struct {
	timeframe market.Timeframe
	window    [3]market.Bar
	count     int
	atr       *indicator.ATR
	baseline  *indicator.VolumeBaseline
}

// NewDetector builds a detector for one structural timeframe.
func NewDetector(tf market.Timeframe, atrPeriod, volumePeriod int) *Detector {
	return &Detector{
		timeframe: tf,
		atr:       indicator.NewATR(atrPeriod),
		baseline:  indicator.NewVolumeBaseline(volumePeriod),
	}
}

// Push feeds the next structural bar and returns a Zone when the last three
// bars form a gap, or nil. The volatility and volume context exclude the bar
// that completes the pattern, so detection never peeks past formation.
func (d *Detector) Push(b market.Bar) *Zone {
	// Context from bars before the window advances.
	atrReady := d.atr.Ready()
	atrValue := d.atr.Value()
	volumeRatio := 0.0
	if d.baseline.Ready() {
		volumeRatio = d.baseline.Ratio(b.Volume)
	}
	d.atr.Update(b)
	d.baseline.Update(b.Volume)

	if d.count < 3 {
		d.window[d.count] = b
		d.count++
	} else {
		d.window[0], d.window[1], d.window[2] = d.window[1], d.window[2], b
	}
	if d.count < 3 {
		return nil
	}

	b0, b2 := d.window[0], d.window[2]

	var dir Direction
	var low, high float64
	switch {
	case b0.High < b2.Low:
		dir, low, high = Bullish, b0.High, b2.Low
	case b0.Low > b2.High:
		dir, low, high = Bearish, b2.High, b0.Low
	default:
		return nil
	}

	gap := high - low
	if gap <= 0 {
		// Degenerate zero-width band. Correctness guard, not a tunable filter.
		return nil
	}

	zone := &Zone{
		ID:          zoneID(d.timeframe, dir, b.Ts),
		Timeframe:   d.timeframe,
		Direction:   dir,
		Low:         low,
		High:        high,
		GapSize:     gap,
		FormedAt:    b.Ts,
		VolumeRatio: volumeRatio,
	}
	if b2.Close > 0 {
		zone.GapPct = gap / b2.Close * 100
	}
	if atrReady && atrValue > 0 {
		zone.GapATR = gap / atrValue
	}
	return zone
}

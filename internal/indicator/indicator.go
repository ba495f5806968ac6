// Package indicator provides the incremental technical kernels the filters consume.
package indicator

import (
	"math"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

// EMA computes an exponential moving average incrementally, seeded with the
// simple average of the first period closes. Value is meaningless until Ready.
type EMA struct {
	period int
	k      float64
	seed   []float64
	value  float64
	ready  bool
}

// NewEMA builds an EMA with the given period (must be > 0).
func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		k:      2.0 / float64(period+1),
		seed:   make([]float64, 0, period),
	}
}

// Update folds a close price into the average.
func (e *EMA) Update(close float64) {
	if !e.ready {
		e.seed = append(e.seed, close)
		if len(e.seed) < e.period {
			return
		}
		var sum float64
		for _, v := range e.seed {
			sum += v
		}
		e.value = sum / float64(e.period)
		e.seed = nil
		e.ready = true
		return
	}
	e.value = (close-e.value)*e.k + e.value
}

// Ready reports whether enough samples have been seen.
func (e *EMA) Ready() bool { return e.ready }

// Value returns the current average; only meaningful once Ready.
func (e *EMA) Value() float64 { return e.value }

// ATR tracks the simple average of true range over a rolling period.
type ATR struct {
	period    int
	prevClose float64
	hasPrev   bool
	trs       []float64
	sum       float64
}

// NewATR builds an ATR with the given period (must be > 0).
func NewATR(period int) *ATR {
	return &ATR{period: period, trs: make([]float64, 0, period)}
}

// Update folds a bar's true range into the rolling window.
func (a *ATR) Update(b market.Bar) {
	if !a.hasPrev {
		a.prevClose = b.Close
		a.hasPrev = true
		return
	}
	tr := math.Max(b.High-b.Low,
		math.Max(math.Abs(b.High-a.prevClose), math.Abs(b.Low-a.prevClose)))
	a.prevClose = b.Close

	a.trs = append(a.trs, tr)
	a.sum += tr
	if len(a.trs) > a.period {
		a.sum -= a.trs[0]
		a.trs = a.trs[1:]
	}
}

// Ready reports whether a full period of true ranges has accumulated.
func (a *ATR) Ready() bool { return len(a.trs) >= a.period }

// Value returns the current average true range; only meaningful once Ready.
func (a *ATR) Value() float64 {
	if len(a.trs) == 0 {
		return 0
	}
	return a.sum / float64(len(a.trs))
}

// VolumeBaseline keeps a rolling mean of bar volumes so filters can express
// a bar's volume as a multiple of recent activity.
type VolumeBaseline struct {
	period  int
	samples []float64
	sum     float64
}

// NewVolumeBaseline builds a baseline over the given period (must be > 0).
func NewVolumeBaseline(period int) *VolumeBaseline {
	return &VolumeBaseline{period: period, samples: make([]float64, 0, period)}
}

// Update folds a bar volume into the rolling mean.
func (v *VolumeBaseline) Update(volume float64) {
	v.samples = append(v.samples, volume)
	v.sum += volume
	if len(v.samples) > v.period {
		v.sum -= v.samples[0]
		v.samples = v.samples[1:]
	}
}

// Ready reports whether a full period of volumes has accumulated.
func (v *VolumeBaseline) Ready() bool { return len(v.samples) >= v.period }

// Ratio returns volume divided by the rolling mean, or 0 when the mean is degenerate.
func (v *VolumeBaseline) Ratio(volume float64) float64 {
	if len(v.samples) == 0 || v.sum <= 0 {
		return 0
	}
	mean := v.sum / float64(len(v.samples))
	return volume / mean
}

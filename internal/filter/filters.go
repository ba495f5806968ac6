package filter

import (
	"github.com/EmilianoGerez/algorithmic-sub002/internal/fvg"
)

// The sentinel check comes before any comparison in every filter below: a
// zero threshold means "disabled" and must short-circuit to ABSTAIN, never
// feed the comparison. Likewise missing indicator history abstains — lack of
// data must not masquerade as rejection.

// GapATRFilter admits zones whose gap is at least min multiples of ATR.
type GapATRFilter struct {
	Min float64
}

// Name implements Filter.
func (f GapATRFilter) Name() string { return "gap_atr" }

// Evaluate implements Filter.
func (f GapATRFilter) Evaluate(zone *fvg.Zone, _ Context) Result {
	if f.Min <= 0 {
		return abstain(f.Name(), "disabled")
	}
	if zone.GapATR <= 0 {
		return abstain(f.Name(), "no ATR context at formation")
	}
	if zone.GapATR >= f.Min {
		return pass(f.Name(), "gap %.2fx ATR >= %.2fx", zone.GapATR, f.Min)
	}
	return fail(f.Name(), "gap %.2fx ATR < %.2fx", zone.GapATR, f.Min)
}

// GapPctFilter admits zones whose gap is at least min percent of price.
type GapPctFilter struct {
	Min float64
}

// Name implements Filter.
func (f GapPctFilter) Name() string { return "gap_pct" }

// Evaluate implements Filter.
func (f GapPctFilter) Evaluate(zone *fvg.Zone, _ Context) Result {
	if f.Min <= 0 {
		return abstain(f.Name(), "disabled")
	}
	if zone.GapPct >= f.Min {
		return pass(f.Name(), "gap %.3f%% >= %.3f%%", zone.GapPct, f.Min)
	}
	return fail(f.Name(), "gap %.3f%% < %.3f%%", zone.GapPct, f.Min)
}

// RelVolumeFilter admits zones formed on at least min multiples of baseline volume.
type RelVolumeFilter struct {
	Min float64
}

// Name implements Filter.
func (f RelVolumeFilter) Name() string { return "rel_volume" }

// Evaluate implements Filter.
func (f RelVolumeFilter) Evaluate(zone *fvg.Zone, _ Context) Result {
	if f.Min <= 0 {
		return abstain(f.Name(), "disabled")
	}
	if zone.VolumeRatio <= 0 {
		return abstain(f.Name(), "no volume baseline at formation")
	}
	if zone.VolumeRatio >= f.Min {
		return pass(f.Name(), "formation volume %.2fx >= %.2fx", zone.VolumeRatio, f.Min)
	}
	return fail(f.Name(), "formation volume %.2fx < %.2fx", zone.VolumeRatio, f.Min)
}

// VolumeFilter requires the current bar's volume to reach a multiple of the
// rolling baseline. A multiple of exactly zero means disabled.
type VolumeFilter struct {
	Multiple float64
}

// Name implements Filter.
func (f VolumeFilter) Name() string { return "volume" }

// Evaluate implements Filter.
func (f VolumeFilter) Evaluate(_ *fvg.Zone, ctx Context) Result {
	if f.Multiple <= 0 {
		return abstain(f.Name(), "disabled")
	}
	if !ctx.VolumeReady {
		return abstain(f.Name(), "insufficient volume history")
	}
	if ctx.VolumeRatio >= f.Multiple {
		return pass(f.Name(), "volume %.2fx >= %.2fx", ctx.VolumeRatio, f.Multiple)
	}
	return fail(f.Name(), "volume %.2fx < %.2fx", ctx.VolumeRatio, f.Multiple)
}

// EMAAlignFilter requires the bar close to sit on the zone's favorable side
// of the EMA, within an optional tolerance percentage.
type EMAAlignFilter struct {
	TolerancePct float64
	Required     bool
}

// Name implements Filter.
func (f EMAAlignFilter) Name() string { return "ema_align" }

// Evaluate implements Filter.
func (f EMAAlignFilter) Evaluate(zone *fvg.Zone, ctx Context) Result {
	if !f.Required {
		return abstain(f.Name(), "disabled")
	}
	if !ctx.EMAReady {
		return abstain(f.Name(), "insufficient EMA history")
	}

	tol := f.TolerancePct / 100
	switch zone.Direction {
	case fvg.Bullish:
		floor := ctx.EMA * (1 - tol)
		if ctx.Bar.Close >= floor {
			return pass(f.Name(), "close %.4f >= ema %.4f (tol %.2f%%)", ctx.Bar.Close, ctx.EMA, f.TolerancePct)
		}
		return fail(f.Name(), "close %.4f < ema %.4f (tol %.2f%%)", ctx.Bar.Close, ctx.EMA, f.TolerancePct)
	default:
		ceil := ctx.EMA * (1 + tol)
		if ctx.Bar.Close <= ceil {
			return pass(f.Name(), "close %.4f <= ema %.4f (tol %.2f%%)", ctx.Bar.Close, ctx.EMA, f.TolerancePct)
		}
		return fail(f.Name(), "close %.4f > ema %.4f (tol %.2f%%)", ctx.Bar.Close, ctx.EMA, f.TolerancePct)
	}
}

// Package engine wires the detector, tracker, indicators, and filter chain
// into a deterministic replay over two bar feeds.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/candidate"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/emit"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/filter"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/fvg"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/indicator"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/metrics"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/tracker"
)

// Params are the resolved numeric thresholds the engine runs with. They are
// produced by the configuration collaborator; the engine itself holds no
// ambient or process-wide state.
type Params struct {
	Linger               time.Duration
	EMAPeriod            int
	EMATolerancePct      float64
	VolumeMultiple       float64
	MinGapATR            float64
	MinGapPct            float64
	MinRelVol            float64
	ReclaimRequiresEMA   bool
	ATRPeriod            int
	VolumeBaselinePeriod int
	StructuralTF         market.Timeframe
	ExecutionTF          market.Timeframe
}

// Stats summarizes one replay.
type Stats struct {
	StructuralBars int
	ExecutionBars  int
	RejectedBars   int
	Zones          int
	Signals        int
	Expired        int
}

// Engine replays a historical structural + execution bar pair and emits
// confirmed signals synchronously to its sink. Single-threaded by design;
// identical inputs produce an identical signal sequence.
type Engine struct {
	params   Params
	log      zerolog.Logger
	detector *fvg.Detector
	tracker  *tracker.Tracker
	ema      *indicator.EMA
	volume   *indicator.VolumeBaseline
	ledger   *emit.Ledger
	stats    Stats
}

// New constructs an engine from resolved parameters, a signal sink, and a logger.
func New(params Params, sink emit.Sink, log zerolog.Logger) *Engine {
	chain := filter.NewChain(
		filter.VolumeFilter{Multiple: params.VolumeMultiple},
		filter.EMAAlignFilter{TolerancePct: params.EMATolerancePct, Required: params.ReclaimRequiresEMA},
		filter.GapATRFilter{Min: params.MinGapATR},
		filter.GapPctFilter{Min: params.MinGapPct},
		filter.RelVolumeFilter{Min: params.MinRelVol},
	)
	ledger := emit.NewLedger(0)
	return &Engine{
		params:   params,
		log:      log,
		detector: fvg.NewDetector(params.StructuralTF, params.ATRPeriod, params.VolumeBaselinePeriod),
		tracker:  tracker.New(params.Linger, chain, emit.Tee{ledger, sink}, log),
		ema:      indicator.NewEMA(params.EMAPeriod),
		volume:   indicator.NewVolumeBaseline(params.VolumeBaselinePeriod),
		ledger:   ledger,
	}
}

// Run replays both feeds to completion. Structural bars become eligible for
// detection once their timestamp is at or before the current execution bar,
// so zones are never formed from the execution future. Feed-integrity
// violations abort; malformed bars are dropped individually.
func (e *Engine) Run(structural, execution []market.Bar) error {
	if err := market.CheckOrdered(e.params.StructuralTF, structural); err != nil {
		return fmt.Errorf("structural feed: %w", err)
	}
	if err := market.CheckOrdered(e.params.ExecutionTF, execution); err != nil {
		return fmt.Errorf("execution feed: %w", err)
	}

	si := 0
	for _, bar := range execution {
		for si < len(structural) && !structural[si].Ts.After(bar.Ts) {
			e.pushStructural(structural[si])
			si++
		}

		if err := bar.Validate(); err != nil {
			e.rejectBar(e.params.ExecutionTF, err)
			continue
		}
		e.stats.ExecutionBars++
		metrics.BarsTotal.WithLabelValues(string(e.params.ExecutionTF)).Inc()

		// Ratio against the baseline of prior bars, then fold this bar in.
		ctx := filter.Context{Bar: bar}
		ctx.VolumeReady = e.volume.Ready()
		if ctx.VolumeReady {
			ctx.VolumeRatio = e.volume.Ratio(bar.Volume)
		}
		e.volume.Update(bar.Volume)

		e.ema.Update(bar.Close)
		ctx.EMAReady = e.ema.Ready()
		ctx.EMA = e.ema.Value()

		e.tracker.OnBar(bar, ctx)
	}

	e.stats.Signals = len(e.ledger.Snapshot())
	for _, cand := range e.tracker.History() {
		if cand.State == candidate.Expired {
			e.stats.Expired++
		}
	}
	return nil
}

func (e *Engine) pushStructural(bar market.Bar) {
	if err := bar.Validate(); err != nil {
		e.rejectBar(e.params.StructuralTF, err)
		return
	}
	e.stats.StructuralBars++
	metrics.BarsTotal.WithLabelValues(string(e.params.StructuralTF)).Inc()

	zone := e.detector.Push(bar)
	if zone == nil {
		return
	}
	e.stats.Zones++
	metrics.ZonesTotal.WithLabelValues(string(zone.Direction)).Inc()
	e.tracker.Track(zone)
}

func (e *Engine) rejectBar(tf market.Timeframe, err error) {
	e.stats.RejectedBars++
	metrics.BarsRejected.Inc()
	e.log.Warn().Str("timeframe", string(tf)).Err(err).Msg("rejected malformed bar")
}

// Stats returns the replay summary gathered so far.
func (e *Engine) Stats() Stats { return e.stats }

// Signals returns the ordered signals emitted during the replay.
func (e *Engine) Signals() []emit.Signal { return e.ledger.Snapshot() }

// LiveCandidates reports how many candidates remain non-terminal.
func (e *Engine) LiveCandidates() int { return e.tracker.Live() }

// Package filter implements the ordered admission checks applied to signal candidates.
package filter

import (
	"fmt"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/fvg"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

// Outcome is the verdict of a single filter evaluation.
type Outcome string

const (
	// Pass means the filter's condition holds.
	Pass Outcome = "pass"
	// Fail means the filter actively rejects the candidate.
	Fail Outcome = "fail"
	// Abstain means the filter is disabled or lacks data; never blocking.
	Abstain Outcome = "abstain"
)

// Result records one filter's verdict with its reason, kept for signal provenance.
type Result struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason"`
}

// Context carries the bar-local values filters may depend on. These change
// every bar, which is why the chain re-runs on each evaluation.
type Context struct {
	Bar         market.Bar
	EMAReady    bool
	EMA         float64
	VolumeReady bool
	VolumeRatio float64 // current bar volume vs rolling baseline
}

// Filter is a single admission predicate over a candidate's zone and bar context.
type Filter interface {
	Name() string
	Evaluate(zone *fvg.Zone, ctx Context) Result
}

// Chain evaluates filters in order and AND-combines them: any FAIL blocks,
// ABSTAIN never blocks, and a chain of only abstains admits.
type Chain struct {
	filters []Filter
}

// NewChain builds a chain preserving filter order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Evaluate runs every filter and reports admission plus the full trail.
func (c *Chain) Evaluate(zone *fvg.Zone, ctx Context) (bool, []Result) {
	trail := make([]Result, 0, len(c.filters))
	admitted := true
	for _, f := range c.filters {
		res := f.Evaluate(zone, ctx)
		trail = append(trail, res)
		if res.Outcome == Fail {
			admitted = false
		}
	}
	return admitted, trail
}

func pass(name, format string, args ...any) Result {
	return Result{Name: name, Outcome: Pass, Reason: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, Outcome: Fail, Reason: fmt.Sprintf(format, args...)}
}

func abstain(name, reason string) Result {
	return Result{Name: name, Outcome: Abstain, Reason: reason}
}

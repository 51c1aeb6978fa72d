// Package dmr is the daily market review engine. It turns the 4H/1H shelves,
// the weekly/24h/morning volume profiles and the 30m opening range into the
// daily support/resistance band and the breakout/breakdown triggers inside it.
//
// Everything here is a pure function of its arguments and safe to call from
// any number of goroutines.
package dmr

import (
	"errors"
	"fmt"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

// ErrBandCollapsed reports an output whose prices do not satisfy
// support < breakdown < breakout < resistance. All four HTF shelves at one
// price, or a band narrower than three gaps, end up here.
var ErrBandCollapsed = errors.New("daily band collapsed")

type Engine struct {
	Factors Factors
}

func NewEngine(factors Factors) *Engine {
	return &Engine{Factors: factors}
}

// Result is the engine output together with intermediate values callers may
// want to log.
type Result struct {
	Output       types.EngineOutput
	MinGap       float64
	FallbackUsed bool
}

// ComputeDailyLevels runs the review with PlaceholderFactors.
func ComputeDailyLevels(in types.EngineInput) types.EngineOutput {
	return NewEngine(PlaceholderFactors).Compute(in)
}

func (e *Engine) Compute(in types.EngineInput) types.EngineOutput {
	return e.Run(in).Output
}

// Run selects the daily band from HTF shelves only, then builds the triggers
// inside it.
func (e *Engine) Run(in types.EngineInput) Result {
	sel := e.Factors.SelectDailyLevels(in.H4Supply, in.H4Demand, in.H1Supply, in.H1Demand, in.Weekly, in.F24)

	trig := BuildTriggers(
		sel.Levels,
		in.H4Supply, in.H4Demand, in.H1Supply, in.H1Demand,
		in.F24, in.Morning,
		in.Range30,
	)

	return Result{
		Output: types.EngineOutput{
			DailySupport:     roundOne(sel.Levels.Support),
			DailyResistance:  roundOne(sel.Levels.Resistance),
			BreakoutTrigger:  roundOne(trig.Breakout),
			BreakdownTrigger: roundOne(trig.Breakdown),
			HTFResistance:    sel.HTFResistance,
			HTFSupport:       sel.HTFSupport,
		},
		MinGap:       MinGap(sel.Levels),
		FallbackUsed: sel.FallbackUsed,
	}
}

// Validate checks the ordering of a rounded engine output.
func Validate(out types.EngineOutput) error {
	if out.DailySupport < out.BreakdownTrigger &&
		out.BreakdownTrigger < out.BreakoutTrigger &&
		out.BreakoutTrigger < out.DailyResistance {
		return nil
	}
	return fmt.Errorf("%w: support %.1f, breakdown %.1f, breakout %.1f, resistance %.1f",
		ErrBandCollapsed, out.DailySupport, out.BreakdownTrigger, out.BreakoutTrigger, out.DailyResistance)
}

package dmr

import (
	"math"
	"testing"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

type triggerCase struct {
	name                                   string
	levels                                 types.DailyLevels
	h4Supply, h4Demand, h1Supply, h1Demand float64
	f24, morning                           types.VolumeProfile
	range30                                types.OpeningRange
	wantBreakdown, wantBreakout            float64
}

func TestBuildTriggers(t *testing.T) {
	tests := []triggerCase{
		{
			name:     "candidates inside the band are kept",
			levels:   types.DailyLevels{Support: 100, Resistance: 120},
			h4Supply: 118, h4Demand: 102, h1Supply: 117, h1Demand: 103,
			f24:           types.VolumeProfile{VAL: 105, POC: 110, VAH: 112},
			morning:       types.VolumeProfile{VAL: 106, POC: 109, VAH: 113},
			range30:       types.OpeningRange{High: 111, Low: 107},
			wantBreakdown: 102,
			wantBreakout:  118,
		},
		{
			name:     "candidates on the edges are pushed inside",
			levels:   types.DailyLevels{Support: 90, Resistance: 110},
			h4Supply: 110, h4Demand: 90, h1Supply: 108, h1Demand: 92,
			f24:           types.VolumeProfile{VAL: 91, POC: 96, VAH: 107},
			morning:       types.VolumeProfile{VAL: 93, POC: 97, VAH: 105},
			range30:       types.OpeningRange{High: 100, Low: 98},
			wantBreakdown: 91,
			wantBreakout:  109,
		},
		{
			name:     "crossed candidates are recentered",
			levels:   types.DailyLevels{Support: 100, Resistance: 120},
			h4Supply: 105, h4Demand: 110, h1Supply: 104, h1Demand: 111,
			f24:           types.VolumeProfile{VAL: 108, POC: 104, VAH: 105},
			morning:       types.VolumeProfile{VAL: 109, POC: 105, VAH: 104},
			range30:       types.OpeningRange{High: 104, Low: 108},
			wantBreakdown: 109.5,
			wantBreakout:  110.5,
		},
		{
			name:     "narrow band uses the price based gap",
			levels:   types.DailyLevels{Support: 100, Resistance: 100.5},
			h4Supply: 100.25, h4Demand: 100.25, h1Supply: 100.25, h1Demand: 100.25,
			f24:           types.VolumeProfile{VAL: 100.25, POC: 100.25, VAH: 100.25},
			morning:       types.VolumeProfile{VAL: 100.25, POC: 100.25, VAH: 100.25},
			range30:       types.OpeningRange{High: 100.25, Low: 100.25},
			wantBreakdown: 100.175,
			wantBreakout:  100.325,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTriggers(tt.levels, tt.h4Supply, tt.h4Demand, tt.h1Supply, tt.h1Demand, tt.f24, tt.morning, tt.range30)

			if math.Abs(got.Breakdown-tt.wantBreakdown) > 1e-9 {
				t.Errorf("Breakdown = %v, want %v", got.Breakdown, tt.wantBreakdown)
			}
			if math.Abs(got.Breakout-tt.wantBreakout) > 1e-9 {
				t.Errorf("Breakout = %v, want %v", got.Breakout, tt.wantBreakout)
			}
			if !(tt.levels.Support < got.Breakdown && got.Breakdown < got.Breakout && got.Breakout < tt.levels.Resistance) {
				t.Errorf("ordering broken: support %v breakdown %v breakout %v resistance %v",
					tt.levels.Support, got.Breakdown, got.Breakout, tt.levels.Resistance)
			}
		})
	}
}

func TestMinGap(t *testing.T) {
	tests := []struct {
		name   string
		levels types.DailyLevels
		want   float64
	}{
		{name: "band based", levels: types.DailyLevels{Support: 90, Resistance: 110}, want: 1.0},
		{name: "price based", levels: types.DailyLevels{Support: 1000, Resistance: 1010}, want: 1.5},
		{name: "zero width band floors the span", levels: types.DailyLevels{Support: 10, Resistance: 10}, want: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinGap(tt.levels); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MinGap(%+v) = %v, want %v", tt.levels, got, tt.want)
			}
		})
	}
}

// A band narrower than three gaps cannot hold both triggers; the final clamp
// lets the lower bound win and the breakout lands past resistance.
func TestBuildTriggers_BandNarrowerThanClampCapacity(t *testing.T) {
	levels := types.DailyLevels{Support: 1000, Resistance: 1002}
	mark := types.VolumeProfile{VAL: 1001, POC: 1001, VAH: 1001}

	got := BuildTriggers(levels, 1001, 1001, 1001, 1001, mark, mark, types.OpeningRange{High: 1001, Low: 1001})

	if math.Abs(got.Breakdown-1001.5) > 1e-9 {
		t.Errorf("Breakdown = %v, want 1001.5", got.Breakdown)
	}
	if math.Abs(got.Breakout-1003) > 1e-9 {
		t.Errorf("Breakout = %v, want 1003", got.Breakout)
	}
}

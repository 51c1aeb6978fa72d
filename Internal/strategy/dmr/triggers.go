package dmr

import (
	"math"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

const (
	minSpan         = 1.0
	bandGapPct      = 0.05   // 5% of the band
	levelGapPct     = 0.0015 // ~0.15% of support
	clampEdgeFactor = 2.0
)

func maxOf(first float64, rest ...float64) float64 {
	m := first
	for _, v := range rest {
		m = math.Max(m, v)
	}
	return m
}

func minOf(first float64, rest ...float64) float64 {
	m := first
	for _, v := range rest {
		m = math.Min(m, v)
	}
	return m
}

// clamp is max(lo, min(v, hi)); lo wins when the bounds cross.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// MinGap is the spacing kept between triggers and the band edges.
func MinGap(levels types.DailyLevels) float64 {
	span := math.Max(levels.Resistance-levels.Support, minSpan)
	return math.Max(span*bandGapPct, levels.Support*levelGapPct)
}

// BuildTriggers derives breakout and breakdown prices from the HTF shelves
// (bias), the 24h FRVP (backbone), the morning FRVP (must be cleared) and the
// 30m range, then forces
//
//	support < breakdown < breakout < resistance
//
// The stages run in a fixed order: push off the edges, recenter when the
// triggers are too close, then a final hard clamp.
func BuildTriggers(
	levels types.DailyLevels,
	h4Supply, h4Demand, h1Supply, h1Demand float64,
	f24, morning types.VolumeProfile,
	range30 types.OpeningRange,
) types.Triggers {
	support, resistance := levels.Support, levels.Resistance

	breakout := maxOf(h1Supply, h4Supply, f24.VAH, f24.POC, morning.VAH, range30.High)
	breakdown := minOf(h1Demand, h4Demand, f24.VAL, f24.POC, morning.VAL, range30.Low)

	gap := MinGap(levels)

	if breakdown <= support+gap {
		breakdown = support + gap
	}
	if breakout >= resistance-gap {
		breakout = resistance - gap
	}

	if breakout <= breakdown+gap {
		mid := (support + resistance) / 2.0
		breakdown = mid - (gap / 2.0)
		breakout = mid + (gap / 2.0)
	}

	breakdown = clamp(breakdown, support+gap, resistance-clampEdgeFactor*gap)
	breakout = clamp(breakout, breakdown+gap, resistance-gap)

	return types.Triggers{Breakdown: breakdown, Breakout: breakout}
}

package dmr

import (
	"math"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

// Selection is the outcome of picking the daily band from the HTF shelves.
type Selection struct {
	Levels        types.DailyLevels
	HTFResistance types.ShelfPair
	HTFSupport    types.ShelfPair
	// FallbackUsed is set when the strength based picks were inverted and the
	// band was rebuilt from min demand / max supply.
	FallbackUsed bool
}

// choosePrimary returns the winning timeframe. Ties go to 4H.
func choosePrimary(strength4H, strength1H float64) types.Timeframe {
	if strength4H >= strength1H {
		return types.FourHour
	}
	return types.OneHour
}

func (f Factors) scorePair(h4Level, h1Level float64, role types.Role, weekly, f24 types.VolumeProfile) types.ShelfPair {
	s4h := f.Strength(h4Level, types.FourHour, role, weekly, f24)
	s1h := f.Strength(h1Level, types.OneHour, role, weekly, f24)
	primary := choosePrimary(s4h, s1h)

	return types.ShelfPair{
		FourHour: types.Shelf{
			Timeframe: types.FourHour,
			Level:     h4Level,
			Strength:  s4h,
			Primary:   primary == types.FourHour,
		},
		OneHour: types.Shelf{
			Timeframe: types.OneHour,
			Level:     h1Level,
			Strength:  s1h,
			Primary:   primary == types.OneHour,
		},
	}
}

// SelectDailyLevels picks daily support and resistance using PlaceholderFactors.
func SelectDailyLevels(h4Supply, h4Demand, h1Supply, h1Demand float64, weekly, f24 types.VolumeProfile) Selection {
	return PlaceholderFactors.SelectDailyLevels(h4Supply, h4Demand, h1Supply, h1Demand, weekly, f24)
}

// SelectDailyLevels scores the 4H/1H demand shelves for support and the
// 4H/1H supply shelves for resistance. The primary shelf of each role sets the
// daily level. Morning FRVP is never used here.
func (f Factors) SelectDailyLevels(h4Supply, h4Demand, h1Supply, h1Demand float64, weekly, f24 types.VolumeProfile) Selection {
	support := f.scorePair(h4Demand, h1Demand, types.Support, weekly, f24)
	resistance := f.scorePair(h4Supply, h1Supply, types.Resistance, weekly, f24)

	sel := Selection{
		Levels: types.DailyLevels{
			Support:    support.Primary().Level,
			Resistance: resistance.Primary().Level,
		},
		HTFResistance: resistance,
		HTFSupport:    support,
	}

	// Inverted shelves: keep the scored records, widen the band instead.
	if sel.Levels.Support >= sel.Levels.Resistance {
		sel.Levels.Support = math.Min(h4Demand, h1Demand)
		sel.Levels.Resistance = math.Max(h4Supply, h1Supply)
		sel.FallbackUsed = true
	}

	return sel
}

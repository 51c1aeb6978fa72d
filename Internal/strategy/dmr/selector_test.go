package dmr

import (
	"testing"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

func TestChoosePrimary(t *testing.T) {
	tests := []struct {
		name     string
		s4h, s1h float64
		want     types.Timeframe
	}{
		{name: "4H stronger", s4h: 6.7, s1h: 4.2, want: types.FourHour},
		{name: "1H stronger", s4h: 5.0, s1h: 7.5, want: types.OneHour},
		{name: "tie goes to 4H", s4h: 5.8, s1h: 5.8, want: types.FourHour},
		{name: "zero tie goes to 4H", s4h: 0, s1h: 0, want: types.FourHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := choosePrimary(tt.s4h, tt.s1h); got != tt.want {
				t.Errorf("choosePrimary(%v, %v) = %s, want %s", tt.s4h, tt.s1h, got, tt.want)
			}
		})
	}
}

func TestSelectDailyLevels_StrengthPicks(t *testing.T) {
	weekly := types.VolumeProfile{VAL: 89, POC: 95, VAH: 109}
	f24 := types.VolumeProfile{VAL: 91, POC: 96, VAH: 107}

	// 1H demand sits on the 24h VAL, so it outscores the unaligned 4H shelf.
	sel := SelectDailyLevels(110, 88, 108, 91, weekly, f24)

	if sel.FallbackUsed {
		t.Fatalf("FallbackUsed = true, want false")
	}
	if sel.Levels.Support != 91 {
		t.Errorf("Support = %v, want 91", sel.Levels.Support)
	}
	if sel.Levels.Resistance != 110 {
		t.Errorf("Resistance = %v, want 110", sel.Levels.Resistance)
	}

	sup := sel.HTFSupport
	if sup.FourHour.Timeframe != types.FourHour || sup.OneHour.Timeframe != types.OneHour {
		t.Fatalf("support pair out of order: %+v", sup)
	}
	if sup.FourHour.Primary || !sup.OneHour.Primary {
		t.Errorf("support primary flags = (4H %v, 1H %v), want (false, true)", sup.FourHour.Primary, sup.OneHour.Primary)
	}
	if sup.FourHour.Strength != 5.0 || sup.OneHour.Strength != 7.5 {
		t.Errorf("support strengths = (%v, %v), want (5.0, 7.5)", sup.FourHour.Strength, sup.OneHour.Strength)
	}

	res := sel.HTFResistance
	if !res.FourHour.Primary || res.OneHour.Primary {
		t.Errorf("resistance primary flags = (4H %v, 1H %v), want (true, false)", res.FourHour.Primary, res.OneHour.Primary)
	}
	if res.FourHour.Level != 110 || res.OneHour.Level != 108 {
		t.Errorf("resistance levels = (%v, %v), want (110, 108)", res.FourHour.Level, res.OneHour.Level)
	}
}

func TestSelectDailyLevels_InvertedShelvesFallBack(t *testing.T) {
	weekly := types.VolumeProfile{VAL: 90, POC: 95, VAH: 110}
	f24 := types.VolumeProfile{VAL: 92, POC: 97, VAH: 108}

	// 4H supply below 4H demand: strength picks give support 95 / resistance 80.
	sel := SelectDailyLevels(80, 100, 105, 95, weekly, f24)

	if !sel.FallbackUsed {
		t.Fatalf("FallbackUsed = false, want true")
	}
	if sel.Levels.Support != 95 {
		t.Errorf("Support = %v, want min demand 95", sel.Levels.Support)
	}
	if sel.Levels.Resistance != 105 {
		t.Errorf("Resistance = %v, want max supply 105", sel.Levels.Resistance)
	}
	if sel.Levels.Support >= sel.Levels.Resistance {
		t.Errorf("fallback band still inverted: %+v", sel.Levels)
	}

	// shelf records keep the strength based flags
	if !sel.HTFSupport.OneHour.Primary {
		t.Errorf("1H support should stay primary after fallback")
	}
	if !sel.HTFResistance.FourHour.Primary {
		t.Errorf("4H resistance should stay primary after fallback")
	}
	if sel.HTFResistance.FourHour.Level != 80 {
		t.Errorf("4H resistance level = %v, want 80", sel.HTFResistance.FourHour.Level)
	}
}

func TestSelectDailyLevels_ExactlyOnePrimary(t *testing.T) {
	weekly := types.VolumeProfile{VAL: 90, POC: 95, VAH: 110}
	f24 := types.VolumeProfile{VAL: 92, POC: 97, VAH: 108}

	for _, demand := range []float64{88, 90, 92, 95, 97} {
		for _, supply := range []float64{105, 108, 110, 112} {
			sel := SelectDailyLevels(supply, demand, supply-1, demand+1, weekly, f24)
			for _, pair := range []types.ShelfPair{sel.HTFSupport, sel.HTFResistance} {
				if pair.FourHour.Primary == pair.OneHour.Primary {
					t.Errorf("demand %v supply %v: want exactly one primary, got %+v", demand, supply, pair)
				}
			}
		}
	}
}

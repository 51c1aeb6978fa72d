package dmr

import (
	"math"
	"testing"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

func isOneDecimal(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-9
}

func TestRoundOne(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 100.05, want: 100.0},
		{in: 0.15, want: 0.1},
		{in: 90.25, want: 90.2},
		{in: 0.25, want: 0.2},
		{in: 0.35, want: 0.3},
		{in: 4.1666, want: 4.2},
		{in: 8.3333, want: 8.3},
		{in: 4241.37, want: 4241.4},
		{in: -2.26, want: -2.3},
		{in: 0, want: 0},
	}

	for _, tt := range tests {
		if got := roundOne(tt.in); got != tt.want {
			t.Errorf("roundOne(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrength(t *testing.T) {
	weekly := types.VolumeProfile{VAL: 100, POC: 150, VAH: 200}
	f24 := types.VolumeProfile{VAL: 120, POC: 160, VAH: 180}

	tests := []struct {
		name  string
		level float64
		tf    types.Timeframe
		role  types.Role
		want  float64
	}{
		// raw 6 -> 5.0
		{name: "4H unaligned", level: 110, tf: types.FourHour, role: types.Support, want: 5.0},
		// raw 5 -> 4.1666
		{name: "1H unaligned", level: 110, tf: types.OneHour, role: types.Support, want: 4.2},
		// raw 8 -> 6.666
		{name: "4H loose alignment", level: 100.25, tf: types.FourHour, role: types.Support, want: 6.7},
		// raw 7 -> 5.833
		{name: "1H loose alignment", level: 100.25, tf: types.OneHour, role: types.Support, want: 5.8},
		// raw 10 -> 8.333
		{name: "4H strong alignment", level: 200, tf: types.FourHour, role: types.Resistance, want: 8.3},
		// raw 9 -> 7.5
		{name: "1H strong alignment", level: 200, tf: types.OneHour, role: types.Resistance, want: 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strength(tt.level, tt.tf, tt.role, weekly, f24)
			if got != tt.want {
				t.Errorf("Strength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrength_BoundsAndRounding(t *testing.T) {
	weekly := types.VolumeProfile{VAL: 100, POC: 150, VAH: 200}
	f24 := types.VolumeProfile{VAL: 120, POC: 160, VAH: 180}

	factorSets := []Factors{
		PlaceholderFactors,
		{Touches: 0, VolumeRating: 0},
		{Touches: 10, VolumeRating: 10},
		{Touches: -4, VolumeRating: -2},
		{Touches: 1.37, VolumeRating: 0.61},
	}
	levels := []float64{100, 100.25, 110, 150.1, 199.5, 200}
	timeframes := []types.Timeframe{types.FourHour, types.OneHour}
	roles := []types.Role{types.Support, types.Resistance}

	for _, f := range factorSets {
		for _, level := range levels {
			for _, tf := range timeframes {
				for _, role := range roles {
					got := f.Strength(level, tf, role, weekly, f24)
					if got < 0 || got > 10 {
						t.Errorf("Strength(%+v, %.2f, %s, %s) = %v, outside [0, 10]", f, level, tf, role, got)
					}
					if !isOneDecimal(got) {
						t.Errorf("Strength(%+v, %.2f, %s, %s) = %v, not rounded to one decimal", f, level, tf, role, got)
					}
				}
			}
		}
	}
}

func TestStrength_ClampsExtremeFactors(t *testing.T) {
	weekly := types.VolumeProfile{VAL: 100, POC: 150, VAH: 200}
	f24 := types.VolumeProfile{VAL: 120, POC: 160, VAH: 180}

	high := Factors{Touches: 10, VolumeRating: 10}
	if got := high.Strength(110, types.FourHour, types.Support, weekly, f24); got != 10.0 {
		t.Errorf("Strength() with oversized factors = %v, want 10.0", got)
	}

	low := Factors{Touches: -5, VolumeRating: -5}
	if got := low.Strength(110, types.OneHour, types.Support, weekly, f24); got != 0.0 {
		t.Errorf("Strength() with negative factors = %v, want 0.0", got)
	}
}

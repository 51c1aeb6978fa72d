package dmr

import (
	"math"
	"strconv"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

// Factors are the shelf inputs this engine has no data source for yet.
//
// Recognized options:
//   - Touches: number of clean touches on the shelf. Fixed at 1 pending richer data.
//   - VolumeRating: volume quality at the shelf. Fixed at 1 pending richer data.
type Factors struct {
	Touches      float64 `json:"touches" yaml:"touches"`
	VolumeRating float64 `json:"volume_rating" yaml:"volume_rating"`
}

// PlaceholderFactors treats every shelf as a clean shelf with neutral volume.
var PlaceholderFactors = Factors{Touches: 1, VolumeRating: 1}

const (
	touchWeight      = 3.0
	volumeWeight     = 2.0
	alignmentWeight  = 2.0
	structuralWeight = 1.0

	// raw score of a perfect shelf under the placeholder factors
	rawScale    = 12.0
	maxStrength = 10.0
)

func structuralTag(tf types.Timeframe) float64 {
	if tf == types.FourHour {
		return 1
	}
	return 0
}

// roundOne rounds the exact binary value to one decimal, ties to even.
// Scaling by ten first would turn 100.0499... into the tie 1000.5.
func roundOne(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}

// Strength scores a shelf with PlaceholderFactors.
func Strength(level float64, tf types.Timeframe, role types.Role, weekly, f24 types.VolumeProfile) float64 {
	return PlaceholderFactors.Strength(level, tf, role, weekly, f24)
}

// Strength returns the 0-10 shelf strength, rounded to one decimal:
//
//	raw = 3*touches + 2*volume_rating + 2*alignment + 1*structural_tag
//
// normalised from [0, 12] to [0, 10].
func (f Factors) Strength(level float64, tf types.Timeframe, role types.Role, weekly, f24 types.VolumeProfile) float64 {
	align := float64(Alignment(level, role, weekly, f24))

	raw := touchWeight*f.Touches +
		volumeWeight*f.VolumeRating +
		alignmentWeight*align +
		structuralWeight*structuralTag(tf)

	strength := math.Max(0.0, math.Min(maxStrength, raw*(maxStrength/rawScale)))
	return roundOne(strength)
}

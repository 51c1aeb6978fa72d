package dmr

import (
	"math"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

// Relative distances within which a shelf scores 2 (strong) or 1 (loose)
// against a volume profile mark.
const (
	StrongAlignmentPct = 0.0015 // ~0.15%
	LooseAlignmentPct  = 0.0030 // ~0.30%
)

// pctDiff is |a-b| relative to b. References this close to zero are divided
// by 1 instead.
func pctDiff(a, b float64) float64 {
	denom := math.Abs(b)
	if denom <= 1e-9 {
		denom = 1.0
	}
	return math.Abs(a-b) / denom
}

func referenceMarks(role types.Role, weekly, f24 types.VolumeProfile) [4]float64 {
	if role == types.Resistance {
		return [4]float64{weekly.VAH, weekly.POC, f24.VAH, f24.POC}
	}
	return [4]float64{weekly.VAL, weekly.POC, f24.VAL, f24.POC}
}

// Alignment scores how close a shelf level sits to the weekly VRVP and 24h
// FRVP marks relevant to its role.
//
//	0 = no clear alignment
//	1 = loose alignment (within ~0.30%)
//	2 = strong alignment (within ~0.15%)
func Alignment(level float64, role types.Role, weekly, f24 types.VolumeProfile) int {
	minPct := math.Inf(1)
	for _, ref := range referenceMarks(role, weekly, f24) {
		if d := pctDiff(level, ref); d < minPct {
			minPct = d
		}
	}

	if minPct <= StrongAlignmentPct {
		return 2
	}
	if minPct <= LooseAlignmentPct {
		return 1
	}
	return 0
}

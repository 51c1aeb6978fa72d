package types

import (
	"encoding/json"
	"fmt"
)

// Timeframe identifies which higher-timeframe chart a shelf was drawn on.
type Timeframe string

const (
	FourHour Timeframe = "4H"
	OneHour  Timeframe = "1H"
)

// Role says whether a shelf is a candidate for support or resistance.
type Role string

const (
	Support    Role = "support"
	Resistance Role = "resistance"
)

// VolumeProfile holds the value-area marks of a volume profile window
// (weekly VRVP, 24h FRVP or morning FRVP).
type VolumeProfile struct {
	VAL float64 `json:"val" yaml:"val"`
	POC float64 `json:"poc" yaml:"poc"`
	VAH float64 `json:"vah" yaml:"vah"`
}

// OpeningRange is the 30 minute opening range of the session.
type OpeningRange struct {
	High float64 `json:"high" yaml:"high"`
	Low  float64 `json:"low" yaml:"low"`
}

type Shelf struct {
	Timeframe Timeframe `json:"tf" yaml:"tf"`
	Level     float64   `json:"level" yaml:"level"`
	Strength  float64   `json:"strength" yaml:"strength"` // 0-10, one decimal
	Primary   bool      `json:"primary" yaml:"primary"`
}

// ShelfPair always holds exactly one 4H and one 1H shelf. It serialises as a
// two element list in [4H, 1H] order.
type ShelfPair struct {
	FourHour Shelf
	OneHour  Shelf
}

// Primary returns the shelf flagged as primary. FourHour wins if neither or
// both are flagged.
func (p ShelfPair) Primary() Shelf {
	if p.OneHour.Primary && !p.FourHour.Primary {
		return p.OneHour
	}
	return p.FourHour
}

func (p ShelfPair) List() []Shelf {
	return []Shelf{p.FourHour, p.OneHour}
}

func (p ShelfPair) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.List())
}

func (p *ShelfPair) UnmarshalJSON(data []byte) error {
	var shelves []Shelf
	if err := json.Unmarshal(data, &shelves); err != nil {
		return err
	}
	if len(shelves) != 2 {
		return fmt.Errorf("shelf pair needs exactly 2 shelves, got %d", len(shelves))
	}
	for _, s := range shelves {
		switch s.Timeframe {
		case FourHour:
			p.FourHour = s
		case OneHour:
			p.OneHour = s
		default:
			return fmt.Errorf("unknown shelf timeframe %q", s.Timeframe)
		}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p ShelfPair) MarshalYAML() (interface{}, error) {
	return p.List(), nil
}

type DailyLevels struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

type Triggers struct {
	Breakdown float64 `json:"breakdown"`
	Breakout  float64 `json:"breakout"`
}

// EngineInput is the full set of 15 price inputs for one daily market review.
type EngineInput struct {
	H4Supply float64 `json:"h4_supply" yaml:"h4_supply"`
	H4Demand float64 `json:"h4_demand" yaml:"h4_demand"`
	H1Supply float64 `json:"h1_supply" yaml:"h1_supply"`
	H1Demand float64 `json:"h1_demand" yaml:"h1_demand"`

	Weekly  VolumeProfile `json:"weekly" yaml:"weekly"`
	F24     VolumeProfile `json:"f24" yaml:"f24"`
	Morning VolumeProfile `json:"morning" yaml:"morning"`

	Range30 OpeningRange `json:"range_30m" yaml:"range_30m"`
}

type EngineOutput struct {
	DailySupport     float64   `json:"daily_support" yaml:"daily_support"`
	DailyResistance  float64   `json:"daily_resistance" yaml:"daily_resistance"`
	BreakoutTrigger  float64   `json:"breakout_trigger" yaml:"breakout_trigger"`
	BreakdownTrigger float64   `json:"breakdown_trigger" yaml:"breakdown_trigger"`
	HTFResistance    ShelfPair `json:"htf_resistance" yaml:"htf_resistance"`
	HTFSupport       ShelfPair `json:"htf_support" yaml:"htf_support"`
}

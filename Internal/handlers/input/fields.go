package input

import "github.com/Kabroda-Trading/KTBB-APP/Internal/types"

// Field describes one of the 15 review inputs: its wire name, the label shown
// on forms and prompts, and how it maps onto types.EngineInput.
type Field struct {
	Name  string
	Label string
	Group string

	set func(*types.EngineInput, float64)
	get func(types.EngineInput) float64
}

func (f Field) Set(in *types.EngineInput, v float64) { f.set(in, v) }

func (f Field) Get(in types.EngineInput) float64 { return f.get(in) }

// Group names, in form order.
const (
	GroupShelves = "HTF Shelves"
	GroupWeekly  = "Weekly VRVP"
	GroupF24     = "24h FRVP"
	GroupMorning = "Morning FRVP"
	GroupRange   = "30m Opening Range"
)

// Fields lists the inputs in form order.
var Fields = []Field{
	{"h4_supply", "4H Supply", GroupShelves,
		func(in *types.EngineInput, v float64) { in.H4Supply = v },
		func(in types.EngineInput) float64 { return in.H4Supply }},
	{"h4_demand", "4H Demand", GroupShelves,
		func(in *types.EngineInput, v float64) { in.H4Demand = v },
		func(in types.EngineInput) float64 { return in.H4Demand }},
	{"h1_supply", "1H Supply", GroupShelves,
		func(in *types.EngineInput, v float64) { in.H1Supply = v },
		func(in types.EngineInput) float64 { return in.H1Supply }},
	{"h1_demand", "1H Demand", GroupShelves,
		func(in *types.EngineInput, v float64) { in.H1Demand = v },
		func(in types.EngineInput) float64 { return in.H1Demand }},

	{"weekly_val", "Weekly VAL", GroupWeekly,
		func(in *types.EngineInput, v float64) { in.Weekly.VAL = v },
		func(in types.EngineInput) float64 { return in.Weekly.VAL }},
	{"weekly_poc", "Weekly POC", GroupWeekly,
		func(in *types.EngineInput, v float64) { in.Weekly.POC = v },
		func(in types.EngineInput) float64 { return in.Weekly.POC }},
	{"weekly_vah", "Weekly VAH", GroupWeekly,
		func(in *types.EngineInput, v float64) { in.Weekly.VAH = v },
		func(in types.EngineInput) float64 { return in.Weekly.VAH }},

	{"f24_val", "24h VAL", GroupF24,
		func(in *types.EngineInput, v float64) { in.F24.VAL = v },
		func(in types.EngineInput) float64 { return in.F24.VAL }},
	{"f24_poc", "24h POC", GroupF24,
		func(in *types.EngineInput, v float64) { in.F24.POC = v },
		func(in types.EngineInput) float64 { return in.F24.POC }},
	{"f24_vah", "24h VAH", GroupF24,
		func(in *types.EngineInput, v float64) { in.F24.VAH = v },
		func(in types.EngineInput) float64 { return in.F24.VAH }},

	{"morn_val", "Morning VAL", GroupMorning,
		func(in *types.EngineInput, v float64) { in.Morning.VAL = v },
		func(in types.EngineInput) float64 { return in.Morning.VAL }},
	{"morn_poc", "Morning POC", GroupMorning,
		func(in *types.EngineInput, v float64) { in.Morning.POC = v },
		func(in types.EngineInput) float64 { return in.Morning.POC }},
	{"morn_vah", "Morning VAH", GroupMorning,
		func(in *types.EngineInput, v float64) { in.Morning.VAH = v },
		func(in types.EngineInput) float64 { return in.Morning.VAH }},

	{"r30_high", "30m High", GroupRange,
		func(in *types.EngineInput, v float64) { in.Range30.High = v },
		func(in types.EngineInput) float64 { return in.Range30.High }},
	{"r30_low", "30m Low", GroupRange,
		func(in *types.EngineInput, v float64) { in.Range30.Low = v },
		func(in types.EngineInput) float64 { return in.Range30.Low }},
}

// FieldGroup is a run of consecutive Fields sharing a group name.
type FieldGroup struct {
	Name   string
	Fields []Field
}

// Groups returns Fields split by group, in form order.
func Groups() []FieldGroup {
	var groups []FieldGroup
	for _, f := range Fields {
		if n := len(groups); n > 0 && groups[n-1].Name == f.Group {
			groups[n-1].Fields = append(groups[n-1].Fields, f)
			continue
		}
		groups = append(groups, FieldGroup{Name: f.Group, Fields: []Field{f}})
	}
	return groups
}

// Lookup finds a field by wire name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Flatten returns the input keyed by wire name.
func Flatten(in types.EngineInput) map[string]float64 {
	m := make(map[string]float64, len(Fields))
	for _, f := range Fields {
		m[f.Name] = f.get(in)
	}
	return m
}

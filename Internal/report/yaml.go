package report

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/formatting"
)

// price is an engine price, always written with one decimal.
type price float64

func (p price) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatting.Price(float64(p))}, nil
}

// level is a raw input level, written as entered with at least one decimal.
type level float64

func (l level) MarshalYAML() (interface{}, error) {
	s := decimal.NewFromFloat(float64(l)).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
}

// field order here is the block's key order
type yamlBlock struct {
	Triggers struct {
		Breakout  price `yaml:"breakout"`
		Breakdown price `yaml:"breakdown"`
	} `yaml:"triggers"`
	DailyResistance price `yaml:"daily_resistance"`
	DailySupport    price `yaml:"daily_support"`
	Range30         struct {
		High level `yaml:"high"`
		Low  level `yaml:"low"`
	} `yaml:"range_30m"`
}

// YAMLBlock renders the copy-paste block shown under a review.
func YAMLBlock(out types.EngineOutput, r30 types.OpeningRange) (string, error) {
	var b yamlBlock
	b.Triggers.Breakout = price(out.BreakoutTrigger)
	b.Triggers.Breakdown = price(out.BreakdownTrigger)
	b.DailyResistance = price(out.DailyResistance)
	b.DailySupport = price(out.DailySupport)
	b.Range30.High = level(r30.High)
	b.Range30.Low = level(r30.Low)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// YAML is YAMLBlock for a review.
func (r Review) YAML() (string, error) {
	return YAMLBlock(r.Output, r.Input.Range30)
}

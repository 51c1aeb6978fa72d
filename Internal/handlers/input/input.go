// Package input turns untrusted form, JSON and YAML payloads into a
// types.EngineInput. Every bad field is reported, not just the first.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

const (
	ReasonMissing   = "is required"
	ReasonNotNumber = "must be a number"
	ReasonNotFinite = "must be a finite number"
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// Errors aggregates the field errors of one payload, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// ByField indexes the errors by field name, for re-rendering a form.
func (e Errors) ByField() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		m[fe.Field] = fe.Reason
	}
	return m
}

// ParseValue parses one raw field value. Surrounding whitespace is ignored.
func ParseValue(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ReasonMissing
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ReasonNotFinite
		}
		return 0, ReasonNotNumber
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ReasonNotFinite
	}
	return v, ""
}

// FromLookup builds an input by asking get for each field's raw value.
// A false second return means the field is absent.
func FromLookup(get func(name string) (string, bool)) (types.EngineInput, error) {
	var in types.EngineInput
	var errs Errors

	for _, f := range Fields {
		raw, ok := get(f.Name)
		if !ok {
			errs = append(errs, FieldError{Field: f.Name, Reason: ReasonMissing})
			continue
		}
		v, reason := ParseValue(raw)
		if reason != "" {
			errs = append(errs, FieldError{Field: f.Name, Reason: reason})
			continue
		}
		f.set(&in, v)
	}

	if len(errs) > 0 {
		return types.EngineInput{}, errs
	}
	return in, nil
}

// FromForm reads the fields from submitted form values.
func FromForm(values url.Values) (types.EngineInput, error) {
	return FromLookup(func(name string) (string, bool) {
		vs, ok := values[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	})
}

// FromMap reads the fields from a flat string map.
func FromMap(m map[string]string) (types.EngineInput, error) {
	return FromLookup(func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	})
}

// FromJSON decodes a flat JSON object keyed by field name. Values may be
// numbers or numeric strings; null counts as missing.
func FromJSON(r io.Reader) (types.EngineInput, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return types.EngineInput{}, fmt.Errorf("invalid JSON body: %w", err)
	}

	return FromLookup(func(name string) (string, bool) {
		raw, ok := body[name]
		if !ok {
			return "", false
		}
		raw = bytes.TrimSpace(raw)
		if bytes.Equal(raw, []byte("null")) {
			return "", false
		}
		if len(raw) > 0 && raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return string(raw), true
			}
			return s, true
		}
		return string(raw), true
	})
}

// FromYAML decodes a flat YAML mapping keyed by field name.
func FromYAML(data []byte) (types.EngineInput, error) {
	var body map[string]string
	if err := yaml.Unmarshal(data, &body); err != nil {
		return types.EngineInput{}, fmt.Errorf("invalid YAML input: %w", err)
	}
	return FromMap(body)
}

// ToYAML renders an input as the flat mapping FromYAML reads.
func ToYAML(in types.EngineInput) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range Fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f.get(in), 'f', -1, 64)},
		)
	}
	return yaml.Marshal(node)
}

package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/tile"
)

// RuleSetJSON is the wire form of a rule set. A missing visible field
// means the set is visible.
type RuleSetJSON struct {
	Name    string     `json:"name"`
	Visible *bool      `json:"visible,omitempty"`
	Ignore  bool       `json:"ignore,omitempty"`
	Rules   []RuleJSON `json:"rules"`
}

// RuleJSON is the wire form of a rule.
type RuleJSON struct {
	Pattern     [][]tile.Tile     `json:"pattern"`
	Substitute  [][]tile.Tile     `json:"substitute"`
	Wildcard    tile.Tile         `json:"wildcard"`
	Probability *float64          `json:"probability,omitempty"`
	Mode        rule.MatchingMode `json:"mode"`
	OnlyOnce    bool              `json:"only_once,omitempty"`
}

// EncodeRuleSets converts rule sets to their wire form.
func EncodeRuleSets(sets []*rule.RuleSet[tile.Tile]) []RuleSetJSON {
	out := make([]RuleSetJSON, len(sets))
	for i, s := range sets {
		visible := s.Props.Visible
		rs := RuleSetJSON{
			Name:    s.Props.Name,
			Visible: &visible,
			Ignore:  s.Props.Ignore,
			Rules:   make([]RuleJSON, s.Len()),
		}
		for j, r := range s.Rules() {
			p := r.Properties()
			prob := p.Probability
			rs.Rules[j] = RuleJSON{
				Pattern:     r.Pattern().Rows(),
				Substitute:  r.SubstituteGrid().Rows(),
				Wildcard:    r.Wildcard(),
				Probability: &prob,
				Mode:        p.Mode,
				OnlyOnce:    p.OnlyOnce,
			}
		}
		out[i] = rs
	}
	return out
}

// DecodeRuleSets builds rule sets from their wire form.
func DecodeRuleSets(in []RuleSetJSON) ([]*rule.RuleSet[tile.Tile], error) {
	sets := make([]*rule.RuleSet[tile.Tile], len(in))
	for i, s := range in {
		visible := true
		if s.Visible != nil {
			visible = *s.Visible
		}
		set := rule.NewRuleSet[tile.Tile](rule.SetProperties{Name: s.Name, Visible: visible, Ignore: s.Ignore})
		for j, rj := range s.Rules {
			r, err := rj.build()
			if err != nil {
				return nil, fmt.Errorf("rule set %d (%s) rule %d: %w", i, s.Name, j, err)
			}
			set.Push(r)
		}
		sets[i] = set
	}
	return sets, nil
}

func (rj RuleJSON) build() (*rule.Rule[tile.Tile], error) {
	pattern, err := grid.FromRows(rj.Pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	substitute, err := grid.FromRows(rj.Substitute)
	if err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}
	props := rule.DefaultProperties()
	if rj.Probability != nil {
		props.Probability = *rj.Probability
	}
	props.Mode = rj.Mode
	props.OnlyOnce = rj.OnlyOnce
	return rule.New(pattern, substitute, rj.Wildcard, props)
}

// WriteRuleSets encodes sets as JSON and writes them to w.
func WriteRuleSets(w io.Writer, sets []*rule.RuleSet[tile.Tile]) error {
	if err := json.NewEncoder(w).Encode(EncodeRuleSets(sets)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode rule sets")
	}
	return nil
}

// ReadRuleSets decodes JSON rule sets from r. It does not close r.
func ReadRuleSets(r io.Reader) ([]*rule.RuleSet[tile.Tile], error) {
	var data []RuleSetJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode rule sets")
	}
	return DecodeRuleSets(data)
}

// MarshalRuleSets is WriteRuleSets into a byte slice.
func MarshalRuleSets(sets []*rule.RuleSet[tile.Tile]) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRuleSets(&buf, sets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalRuleSets is ReadRuleSets from a byte slice.
func UnmarshalRuleSets(data []byte) ([]*rule.RuleSet[tile.Tile], error) {
	return ReadRuleSets(bytes.NewReader(data))
}

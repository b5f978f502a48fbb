package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/grid"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/tile"
)

func TestGridRoundTrip(t *testing.T) {
	g := grid.MustFromRows([][]tile.Tile{
		{tile.Present(0), tile.Absent(), tile.Present(1)},
		{tile.Present(1).WithFlip(tile.FlipH), tile.Absent(), tile.Present(0)},
	})
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := ExportGrid(g, path); err != nil {
		t.Fatalf("ExportGrid: %v", err)
	}
	got, err := ImportGrid(path)
	if err != nil {
		t.Fatalf("ImportGrid: %v", err)
	}
	if !got.Equal(g) {
		t.Errorf("round trip = %v, want %v", got.Rows(), g.Rows())
	}
}

func TestReadGrid(t *testing.T) {
	g, err := ReadGrid(strings.NewReader(`{"width": 2, "height": 1, "cells": [3, 0]}`))
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	if g.Data()[0] != tile.Present(2) || !g.Data()[1].IsAbsent() {
		t.Errorf("cells = %v", g.Data())
	}

	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"width":`},
		{"zero size", `{"width": 0, "height": 1, "cells": []}`},
		{"cell count", `{"width": 2, "height": 2, "cells": [1, 2, 3]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadGrid(strings.NewReader(tt.in)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadGrid err = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestRuleSetsRoundTrip(t *testing.T) {
	pattern := grid.MustFromRows([][]tile.Tile{{tile.Present(1), tile.Present(0)}})
	substitute := grid.MustFromRows([][]tile.Tile{{tile.Present(0), tile.Absent()}})
	props := rule.Properties{Probability: 0.25, Mode: rule.Destination, OnlyOnce: true}
	r, err := rule.New(pattern, substitute, tile.Absent(), props)
	if err != nil {
		t.Fatalf("rule.New: %v", err)
	}
	in := []*rule.RuleSet[tile.Tile]{
		rule.NewRuleSet(rule.SetProperties{Name: "roads", Visible: true}, r),
		rule.NewRuleSet[tile.Tile](rule.SetProperties{Name: "empty", Ignore: true}),
	}

	data, err := MarshalRuleSets(in)
	if err != nil {
		t.Fatalf("MarshalRuleSets: %v", err)
	}
	out, err := UnmarshalRuleSets(data)
	if err != nil {
		t.Fatalf("UnmarshalRuleSets: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Props != in[0].Props || out[1].Props != in[1].Props {
		t.Errorf("props = %+v, %+v", out[0].Props, out[1].Props)
	}
	got := out[0].Rules()[0]
	if got.Properties() != props {
		t.Errorf("rule props = %+v, want %+v", got.Properties(), props)
	}
	if !got.Pattern().Equal(pattern) || !got.SubstituteGrid().Equal(substitute) {
		t.Error("pattern or substitute changed in round trip")
	}
	if out[1].Len() != 0 {
		t.Errorf("empty set has %d rules", out[1].Len())
	}
}

func TestReadRuleSetsDefaults(t *testing.T) {
	sets, err := ReadRuleSets(strings.NewReader(`[{"name": "a", "rules": [{"pattern": [[1]], "substitute": [[2]]}]}]`))
	if err != nil {
		t.Fatalf("ReadRuleSets: %v", err)
	}
	if p := sets[0].Rules()[0].Properties(); p != rule.DefaultProperties() {
		t.Errorf("props = %+v, want defaults", p)
	}
	if !sets[0].Props.Visible || !sets[0].Props.Active() {
		t.Errorf("set props = %+v, want visible and active", sets[0].Props)
	}

	hidden, err := ReadRuleSets(strings.NewReader(`[{"name": "b", "visible": false, "rules": []}]`))
	if err != nil {
		t.Fatalf("ReadRuleSets: %v", err)
	}
	if hidden[0].Props.Visible {
		t.Error("explicit visible=false was ignored")
	}
}

func TestReadRuleSetsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `[{`, errors.ErrCodeInvalidFormat},
		{"bad mode", `[{"rules": [{"pattern": [[1]], "substitute": [[2]], "mode": "up"}]}]`, errors.ErrCodeInvalidFormat},
		{"size mismatch", `[{"rules": [{"pattern": [[1, 1]], "substitute": [[2]]}]}]`, errors.ErrCodeInvalidMapSize},
		{"bad probability", `[{"rules": [{"pattern": [[1]], "substitute": [[2]], "probability": 2}]}]`, errors.ErrCodeInvalidArgument},
		{"empty pattern", `[{"rules": [{"pattern": [], "substitute": []}]}]`, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRuleSets(bytes.NewReader([]byte(tt.in)))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadRuleSets err = %v, want %v", err, tt.code)
			}
		})
	}
}

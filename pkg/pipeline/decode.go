package pipeline

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/rule"
	"github.com/matzehuels/tisu/pkg/segment"
	"github.com/matzehuels/tisu/pkg/tile"
	"github.com/matzehuels/tisu/pkg/tmx"
)

// Property names read from filter maps.
const (
	PropProbability  = "probability"
	PropMatchingMode = "matching_mode"
	PropOnlyOnce     = "only_once"
	PropIgnore       = "ignore"
)

// DecodeRuleSets builds one rule set per tile layer of a filter map.
//
// Each layer is segmented into rectangles of non-empty cells, which are
// paired in scan order as (pattern, substitute). A pair's properties come
// from the smallest annotation rect in any object layer that contains both
// rects; pairs without one use [rule.DefaultProperties]. Hidden layers and
// layers with ignore=true are decoded but inactive. A map with no pairs in
// any layer fails with INVALID_ARGUMENT; single empty layers are allowed.
func DecodeRuleSets(res *tmx.LoadResult, wildcard tile.Tile) ([]*rule.RuleSet[tile.Tile], error) {
	annotations := flattenRects(res.PropertyLayers)
	sets := make([]*rule.RuleSet[tile.Tile], 0, len(res.MapLayers))
	total := 0

	for i, layer := range res.MapLayers {
		ignore, err := parseBool(layer.Properties, PropIgnore)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, layer.Name, err)
		}
		set := rule.NewRuleSet[tile.Tile](rule.SetProperties{
			Name:    layer.Name,
			Visible: layer.Visible,
			Ignore:  ignore,
		})

		pairs, err := layerPairs(layer)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, layer.Name, err)
		}
		for j, pair := range pairs {
			r, err := buildRule(layer, pair, annotations, wildcard)
			if err != nil {
				return nil, fmt.Errorf("layer %d (%s) pair %d: %w", i, layer.Name, j, err)
			}
			set.Push(r)
		}
		total += set.Len()
		sets = append(sets, set)
	}
	if total == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "filter map defines no rules in %d tile layers", len(res.MapLayers))
	}
	return sets, nil
}

// Pair describes one pattern/substitute pair of a filter map without
// building the rule.
type Pair struct {
	Layer      string
	Active     bool
	Pattern    geom.Rect
	Substitute geom.Rect
	Properties rule.Properties
	// Annotated is set when an annotation rect supplied the properties.
	Annotated bool
}

// ListPairs returns the pairs of every tile layer in layer order.
func ListPairs(res *tmx.LoadResult) ([]Pair, error) {
	annotations := flattenRects(res.PropertyLayers)
	var out []Pair
	for i, layer := range res.MapLayers {
		ignore, err := parseBool(layer.Properties, PropIgnore)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, layer.Name, err)
		}
		pairs, err := layerPairs(layer)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, layer.Name, err)
		}
		for _, pair := range pairs {
			p := Pair{
				Layer:      layer.Name,
				Active:     layer.Visible && !ignore,
				Pattern:    pair[0],
				Substitute: pair[1],
				Properties: rule.DefaultProperties(),
			}
			if pr, ok := LookupProperties(annotations, pair[0], pair[1]); ok {
				if p.Properties, err = ParseProperties(pr.Properties); err != nil {
					return nil, fmt.Errorf("properties at %v: %w", pr.Rect, err)
				}
				p.Annotated = true
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func layerPairs(layer tmx.MapLayer) ([][2]geom.Rect, error) {
	return segment.Pairs(segment.Extract(layer.Grid, tile.Absent()))
}

func buildRule(layer tmx.MapLayer, pair [2]geom.Rect, annotations []tmx.PropertyRect, wildcard tile.Tile) (*rule.Rule[tile.Tile], error) {
	pattern, err := layer.Grid.Segment(pair[0])
	if err != nil {
		return nil, err
	}
	substitute, err := layer.Grid.Segment(pair[1])
	if err != nil {
		return nil, err
	}

	props := rule.DefaultProperties()
	if pr, ok := LookupProperties(annotations, pair[0], pair[1]); ok {
		if props, err = ParseProperties(pr.Properties); err != nil {
			return nil, fmt.Errorf("properties at %v: %w", pr.Rect, err)
		}
	}
	return rule.New(pattern, substitute, wildcard, props)
}

// LookupProperties returns the smallest-area rect containing both pattern
// and substitute. Ties go to the first in order.
func LookupProperties(rects []tmx.PropertyRect, pattern, substitute geom.Rect) (tmx.PropertyRect, bool) {
	best := -1
	for i, pr := range rects {
		if !pr.Rect.ContainsRect(pattern) || !pr.Rect.ContainsRect(substitute) {
			continue
		}
		if best < 0 || pr.Rect.Area() < rects[best].Rect.Area() {
			best = i
		}
	}
	if best < 0 {
		return tmx.PropertyRect{}, false
	}
	return rects[best], true
}

// ParseProperties reads rule properties from Tiled object properties.
// Missing keys keep their defaults.
func ParseProperties(m map[string]string) (rule.Properties, error) {
	props := rule.DefaultProperties()
	if v, ok := m[PropProbability]; ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return props, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s %q", PropProbability, v)
		}
		props.Probability = p
	}
	if v, ok := m[PropMatchingMode]; ok {
		mode, err := rule.ParseMatchingMode(v)
		if err != nil {
			return props, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s %q", PropMatchingMode, v)
		}
		props.Mode = mode
	}
	once, err := parseBool(m, PropOnlyOnce)
	if err != nil {
		return props, err
	}
	props.OnlyOnce = once
	return props, props.Validate()
}

func parseBool(m map[string]string, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s %q", key, v)
	}
	return b, nil
}

func flattenRects(layers []tmx.PropertyLayer) []tmx.PropertyRect {
	var out []tmx.PropertyRect
	for _, l := range layers {
		out = append(out, l.Rects...)
	}
	return out
}

package rule

import (
	"fmt"

	"github.com/matzehuels/tisu/pkg/grid"
)

// SetProperties describe the authoring layer a rule set was decoded from.
type SetProperties struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Ignore  bool   `json:"ignore"`
}

// Active reports whether a set with these properties should be applied.
func (p SetProperties) Active() bool { return p.Visible && !p.Ignore }

// RuleSet is an ordered list of rules applied in sequence.
type RuleSet[T comparable] struct {
	Props SetProperties
	rules []*Rule[T]
}

// NewRuleSet returns a set holding rules in order.
func NewRuleSet[T comparable](props SetProperties, rules ...*Rule[T]) *RuleSet[T] {
	return &RuleSet[T]{Props: props, rules: append([]*Rule[T](nil), rules...)}
}

// Push appends r.
func (s *RuleSet[T]) Push(r *Rule[T]) { s.rules = append(s.rules, r) }

// Len returns the number of rules.
func (s *RuleSet[T]) Len() int { return len(s.rules) }

// Rules returns the rules in application order. The slice is shared.
func (s *RuleSet[T]) Rules() []*Rule[T] { return s.rules }

// Apply applies every rule in order with the same source, destination and
// sampler, stopping at the first failure. Rules applied before the failing
// one keep their writes. An empty set is a no-op.
func (s *RuleSet[T]) Apply(source, destination *grid.Grid[T], rng Sampler) error {
	for i, r := range s.rules {
		if err := r.Apply(source, destination, rng); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

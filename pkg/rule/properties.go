package rule

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/tisu/pkg/errors"
)

// MatchingMode selects which grid a rule compares its pattern against.
type MatchingMode int

const (
	// Source compares against the unmodified source grid.
	Source MatchingMode = iota
	// Destination compares against the destination grid as it is rewritten.
	Destination
)

func (m MatchingMode) String() string {
	switch m {
	case Source:
		return "source"
	case Destination:
		return "destination"
	default:
		return "unknown"
	}
}

// ParseMatchingMode parses "source" or "destination", case-insensitively.
func ParseMatchingMode(s string) (MatchingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", "":
		return Source, nil
	case "destination":
		return Destination, nil
	}
	return Source, errors.New(errors.ErrCodeInvalidArgument, "unknown matching mode %q", s)
}

// MarshalJSON encodes the mode by name.
func (m MatchingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode name.
func (m *MatchingMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseMatchingMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Properties controls how a rule is applied.
type Properties struct {
	// Probability is the chance, in [0, 1], that an anchor is considered at all.
	Probability float64 `json:"probability"`
	// Mode selects the grid patterns are matched against.
	Mode MatchingMode `json:"mode"`
	// OnlyOnce forbids matches over cells this rule already rewrote.
	OnlyOnce bool `json:"only_once"`
}

// DefaultProperties returns {Probability: 1, Mode: Source, OnlyOnce: false}.
func DefaultProperties() Properties {
	return Properties{Probability: 1, Mode: Source}
}

// Validate checks the probability range and the mode.
func (p Properties) Validate() error {
	if err := errors.ValidateProbability(p.Probability); err != nil {
		return err
	}
	if p.Mode != Source && p.Mode != Destination {
		return errors.New(errors.ErrCodeInvalidArgument, "unknown matching mode %d", int(p.Mode))
	}
	return nil
}

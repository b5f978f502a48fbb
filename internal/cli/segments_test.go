package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tisu/pkg/errors"
	"github.com/matzehuels/tisu/pkg/geom"
	"github.com/matzehuels/tisu/pkg/pipeline"
	"github.com/matzehuels/tisu/pkg/rule"
)

func testPairs() []pipeline.Pair {
	return []pipeline.Pair{
		{
			Layer:      "roads",
			Active:     true,
			Pattern:    geom.MustRect(0, 0, 2, 1),
			Substitute: geom.MustRect(3, 0, 2, 1),
			Properties: rule.Properties{Probability: 0.5, Mode: rule.Destination, OnlyOnce: true},
			Annotated:  true,
		},
		{
			Layer:      "drafts",
			Pattern:    geom.MustRect(0, 2, 1, 1),
			Substitute: geom.MustRect(2, 2, 1, 1),
			Properties: rule.DefaultProperties(),
		},
	}
}

func TestWritePairsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writePairs(&buf, formatJSON, testPairs()); err != nil {
		t.Fatalf("writePairs: %v", err)
	}
	var got []pairEntry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Mode != "destination" || !got[0].OnlyOnce || got[0].Pattern != geom.MustRect(0, 0, 2, 1) {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Active || got[1].Mode != "source" || got[1].Probability != 1 {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestWritePairsYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writePairs(&buf, formatYAML, testPairs()); err != nil {
		t.Fatalf("writePairs: %v", err)
	}
	if !strings.Contains(buf.String(), "matching_mode: destination") {
		t.Errorf("yaml output missing mode:\n%s", buf.String())
	}
	var got []pairEntry
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(got) != 2 || got[0].Layer != "roads" || got[1].Substitute != geom.MustRect(2, 2, 1, 1) {
		t.Errorf("decoded = %+v", got)
	}
}

func TestWritePairsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writePairs(&buf, formatTable, testPairs()); err != nil {
		t.Fatalf("writePairs: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Layer", "roads", "drafts", "0,0 2x1", "0.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWritePairsUnknownFormat(t *testing.T) {
	err := writePairs(&bytes.Buffer{}, "xml", testPairs())
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestSegmentsCommand(t *testing.T) {
	c := testCLI(t)
	_, _, filters := writeMaps(t)
	if err := execute(t, c, "segments", filters, "--format", "json"); err != nil {
		t.Fatalf("segments: %v", err)
	}
}

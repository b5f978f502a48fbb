package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v1.2.3", "0123456789abcdef"
	got := Template()
	if !strings.Contains(got, "v1.2.3 (0123456,") {
		t.Errorf("Template() = %q, want short commit", got)
	}
	if !strings.HasPrefix(got, "{{.Name}} ") {
		t.Errorf("Template() = %q, want cobra name placeholder", got)
	}
}

func TestString(t *testing.T) {
	if got := String(); !strings.Contains(got, "version: "+Version) {
		t.Errorf("String() = %q", got)
	}
}

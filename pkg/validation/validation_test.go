package validation

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestCollector_AggregatesAll(t *testing.T) {
	c := NewCollector("ships/skalk/info.yaml")

	c.Require("hull", false)
	c.OneOf("class", "Z", "A", "B", "C", "D")
	c.Positive("power", 0)
	c.NonNegative("shield", -1)
	c.Positive("fuel", 3)

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4: %v", c.Len(), c.Err())
	}
	for _, e := range multierr.Errors(c.Err()) {
		if !strings.HasPrefix(e.Error(), "ships/skalk/info.yaml: ") {
			t.Errorf("error %q lacks prefix", e)
		}
	}
}

func TestCollector_EmptyIsNil(t *testing.T) {
	c := NewCollector("x")
	c.Require("name", true)
	if c.Err() != nil {
		t.Errorf("Err() = %v, want nil", c.Err())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCollector_Merge(t *testing.T) {
	parent := NewCollector("file.yaml")
	child := parent.Sub("engine %d", 2)
	child.Addf("size must be w or t")
	child.Addf("location needs two coordinates")

	parent.Merge(child)

	errs := multierr.Errors(parent.Err())
	if len(errs) != 2 {
		t.Fatalf("merged %d errors, want 2", len(errs))
	}
	if errs[0].Error() != "file.yaml: engine 2: size must be w or t" {
		t.Errorf("errs[0] = %q", errs[0])
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid", "Skalk", false},
		{"with space", "Basic Thruster", false},
		{"empty", "", true},
		{"padded", " Skalk", true},
		{"control", "Sk\x07alk", true},
		{"too long", strings.Repeat("a", MaxNameLen+1), true},
		{"invalid utf8", "\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.expectErr {
				t.Errorf("ValidateName(%q) error = %v, expectErr %v", tt.input, err, tt.expectErr)
			}
		})
	}
}

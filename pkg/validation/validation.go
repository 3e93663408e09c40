// Package validation collects field-level problems found while checking
// data-driven descriptors, so that a loader can report every problem in a
// file at once instead of stopping at the first.
package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// MaxNameLen bounds prototype and mount names.
const MaxNameLen = 64

// Collector accumulates validation errors under a common prefix.
type Collector struct {
	prefix string
	err    error
}

// NewCollector returns a collector whose messages start with prefix.
func NewCollector(prefix string) *Collector {
	return &Collector{prefix: prefix}
}

// Addf records a formatted problem.
func (c *Collector) Addf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.prefix != "" {
		msg = c.prefix + ": " + msg
	}
	c.err = multierr.Append(c.err, fmt.Errorf("%s", msg))
}

// Add records err, prefixing it. Each error inside a combined err is kept
// as its own entry.
func (c *Collector) Add(err error) {
	for _, e := range multierr.Errors(err) {
		if c.prefix != "" {
			e = fmt.Errorf("%s: %w", c.prefix, e)
		}
		c.err = multierr.Append(c.err, e)
	}
}

// Merge folds the problems of a child collector into c.
func (c *Collector) Merge(child *Collector) {
	c.Add(child.Err())
}

// Sub returns a child collector whose prefix extends c's.
func (c *Collector) Sub(format string, args ...any) *Collector {
	return NewCollector(fmt.Sprintf(format, args...))
}

// Require records a problem when a required field is missing.
func (c *Collector) Require(field string, present bool) bool {
	if !present {
		c.Addf("missing required field %q", field)
	}
	return present
}

// OneOf records a problem when value is not one of allowed.
func (c *Collector) OneOf(field, value string, allowed ...string) bool {
	if slices.Contains(allowed, value) {
		return true
	}
	c.Addf("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
	return false
}

// Positive records a problem when v is not greater than zero.
func (c *Collector) Positive(field string, v float64) bool {
	if v <= 0 {
		c.Addf("%s must be positive, got %v", field, v)
		return false
	}
	return true
}

// NonNegative records a problem when v is below zero.
func (c *Collector) NonNegative(field string, v float64) bool {
	if v < 0 {
		c.Addf("%s cannot be negative, got %v", field, v)
		return false
	}
	return true
}

// Name records a problem when s is not a usable identifier.
func (c *Collector) Name(field, s string) bool {
	if err := ValidateName(s); err != nil {
		c.Addf("%s: %v", field, err)
		return false
	}
	return true
}

// Len returns the number of recorded problems.
func (c *Collector) Len() int {
	return len(multierr.Errors(c.err))
}

// Err returns the combined problems, or nil when there were none.
func (c *Collector) Err() error {
	return c.err
}

// ValidateName checks a prototype or mount name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("name too long: %d characters (max %d)", len(name), MaxNameLen)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("name contains invalid UTF-8 characters")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("name has leading or trailing whitespace")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name contains control characters")
		}
	}
	return nil
}

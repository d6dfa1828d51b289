// Package validation collects per-field form violations.
package validation

import (
	"strconv"
	"strings"
)

// Violations maps a field name to a violation code (translated at render time).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags empty or whitespace-only values.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// NonNegativeInt parses value as an integer >= 0 and flags anything else.
// Returns the parsed value (0 when invalid).
func NonNegativeInt(field, value string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v[field] = "must_be_number"
		return 0
	}
	if n < 0 {
		v[field] = "must_not_be_negative"
		return 0
	}
	return n
}

// ReferenceID parses value as a positive integer id and flags anything else.
// Returns the parsed id (0 when invalid).
func ReferenceID(field, value string, v Violations) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil || n == 0 {
		v[field] = "invalid_reference"
		return 0
	}
	return uint(n)
}

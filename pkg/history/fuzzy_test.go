package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyMatch(t *testing.T) {
	testCases := []struct {
		value       string
		partial     string
		want        bool
		description string
	}{
		{"cherry-pick", "pi", true, "sub-token after dash"},
		{"cherry-pick", "cher", true, "whole-value prefix"},
		{"cherry-pick", "CHER", true, "whole-value prefix, case-insensitive"},
		{"cherry-pick", "ick", false, "mid sub-token is not a match"},
		{"snake_case_name", "ca", true, "sub-token after underscore"},
		{"origin:main", "ma", true, "sub-token after colon"},
		{"docs/readme.md", "rea", true, "sub-token after slash"},
		{"--force", "fo", true, "leading separators produce no empty sub-tokens"},
		{"checkout", "PI", false, "no sub-token starts with partial"},
		{"Status", "st", true, "case-insensitive covers capitalized values"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, fuzzyMatch(tc.value, tc.partial),
			"%s: fuzzyMatch(%q, %q)", tc.description, tc.value, tc.partial)
	}
}

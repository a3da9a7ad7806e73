package utils

import (
	"strings"
	"unicode"
)

// IsSubTokenSeparator reports whether a rune separates the sub-tokens of a
// command token. Flag-style and path-style tokens ("cherry-pick",
// "remote:branch", "docs/readme") split on these for fuzzy matching.
func IsSubTokenSeparator(r rune) bool {
	return r == '-' || r == '_' || r == ':' || r == '/'
}

// SplitSubTokens splits a token on sub-token separators, dropping empty
// segments produced by leading or doubled separators ("--force" yields
// only "force").
func SplitSubTokens(s string) []string {
	return strings.FieldsFunc(s, IsSubTokenSeparator)
}

// HasPrefixIgnoreCase checks if string has prefix case-insensitively
func HasPrefixIgnoreCase(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// ContainsControlChars checks if a string contains control characters
// other than tab. Lines with embedded control bytes never come from a real
// terminal and are rejected at the IPC boundary before touching the index.
func ContainsControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\t' {
			return true
		}
	}
	return false
}

// IsValidInput checks if input should be processed at the server boundary.
func IsValidInput(s string) bool {
	return !ContainsControlChars(s)
}

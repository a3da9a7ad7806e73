// Package history is the core, providing the command trie, tokenization and
// continuation retrieval for partially typed command lines.
package history

// Suggestion is one proposed continuation of the in-progress input line.
// Value is always a full token (never a suffix slice of one), or, for an
// unambiguous chain down to a leaf, several tokens joined by single spaces.
// Space reports whether a trailing separator should be appended because
// further typing is expected; it is false when the suggestion completes a
// recorded command line.
type Suggestion struct {
	Value string
	Space bool
}

// Suggester defines the interface for command continuation engines
type Suggester interface {
	// Add records an executed command line into the index
	Add(line string)

	// ContinuationsFor returns ranked continuations of the in-progress input
	ContinuationsFor(input string) []Suggestion

	// Stats returns statistics about the recorded history
	Stats() map[string]int
}

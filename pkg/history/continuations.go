package history

import (
	"sort"
	"strings"
)

// candidate pairs a matched child token with its node. Slice order is the
// discovery order of the children, which is the tiebreak for equal
// frequencies.
type candidate struct {
	token string
	node  *node
}

// ContinuationsFor tokenizes the in-progress input line, walks the trie
// through every complete token, and resolves continuations of the last,
// partially typed word at the node reached. Children are matched by exact
// case-sensitive prefix first; only when that yields nothing does the fuzzy
// sub-token fallback run. Results are ordered by descending edge frequency
// with ties broken by discovery order. It never mutates the trie.
func (t *Trie) ContinuationsFor(input string) []Suggestion {
	tokens, open := scan(input)
	if len(tokens) == 0 {
		// Nothing typed yet: no partial word to complete, even though the
		// root may have children.
		return nil
	}

	complete := tokens
	partial := ""
	if open {
		complete = tokens[:len(tokens)-1]
		partial = tokens[len(tokens)-1]
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	fork := t.walk(complete)
	if fork == nil {
		// No recorded line shares this token prefix.
		return nil
	}

	cands := matchChildren(fork, partial)
	if len(cands) == 0 {
		return nil
	}

	// Stable sort keeps discovery order for equal frequencies.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].node.freq > cands[j].node.freq
	})

	suggestions := make([]Suggestion, 0, len(cands)+1)
	for _, c := range cands {
		suggestions = append(suggestions, Suggestion{
			Value: c.token,
			Space: !c.node.leaf(),
		})
	}

	// With a single candidate whose subtree is an unbroken single-child
	// chain, additionally offer the whole chain down to the leaf.
	if len(cands) == 1 {
		if chain, ok := deepChain(cands[0]); ok {
			suggestions = append(suggestions, Suggestion{Value: chain})
		}
	}

	return suggestions
}

// matchChildren computes the candidate set at the fork node. The exact pass
// is case-sensitive prefix matching; the fuzzy pass runs only when the
// exact pass found nothing. An empty partial (input ended in whitespace)
// exact-matches every child.
func matchChildren(fork *node, partial string) []candidate {
	var cands []candidate
	for _, tok := range fork.keys {
		if strings.HasPrefix(tok, partial) {
			cands = append(cands, candidate{token: tok, node: fork.children[tok]})
		}
	}
	if len(cands) > 0 {
		return cands
	}

	for _, tok := range fork.keys {
		if fuzzyMatch(tok, partial) {
			cands = append(cands, candidate{token: tok, node: fork.children[tok]})
		}
	}
	return cands
}

// deepChain follows the single-child chain below a lone candidate. It
// returns the candidate token concatenated with every token down to the
// leaf, or false when the candidate is itself a leaf (the chain would just
// duplicate the word-level suggestion) or some descendant branches.
func deepChain(c candidate) (string, bool) {
	n := c.node
	if n.leaf() {
		return "", false
	}

	parts := []string{c.token}
	for len(n.children) == 1 {
		tok := n.keys[0]
		parts = append(parts, tok)
		n = n.children[tok]
	}
	if !n.leaf() {
		return "", false
	}
	return strings.Join(parts, " "), true
}

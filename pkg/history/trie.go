package history

import "sync"

// node represents the state of having typed a sequence of complete tokens.
// freq is per edge: it counts the recorded lines that passed through this
// exact token at this exact position, and lives on the child node of the
// edge. keys carries the children in creation order so that frequency ties
// rank by discovery order regardless of map iteration.
type node struct {
	children map[string]*node
	keys     []string
	freq     int
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// leaf means no recorded command line continues past this node.
func (n *node) leaf() bool {
	return len(n.children) == 0
}

// child returns the child for tok, creating it on first traversal.
func (n *node) child(tok string) (*node, bool) {
	c, ok := n.children[tok]
	if !ok {
		c = newNode()
		n.children[tok] = c
		n.keys = append(n.keys, tok)
		return c, true
	}
	return c, false
}

// Trie indexes recorded command lines token by token. It is safe for
// concurrent use: Add takes the write lock, ContinuationsFor the read lock,
// so readers never observe a half-created edge.
type Trie struct {
	mu    sync.RWMutex
	root  *node
	adds  int
	nodes int
}

// NewTrie returns an empty history trie.
func NewTrie() *Trie {
	return &Trie{root: newNode()}
}

// Add tokenizes line and records it, incrementing the frequency of every
// edge along the token path. Lines that tokenize to nothing are ignored.
func (t *Trie) Add(line string) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.root
	for _, tok := range tokens {
		next, created := cur.child(tok)
		if created {
			t.nodes++
		}
		next.freq++
		cur = next
	}
	t.adds++
}

// walk follows exact-value edges through tokens and returns the node
// reached, or nil when some token has no matching edge.
func (t *Trie) walk(tokens []string) *node {
	cur := t.root
	for _, tok := range tokens {
		next, ok := cur.children[tok]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Stats returns statistics about the recorded history
func (t *Trie) Stats() map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return map[string]int{
		"recordedLines": t.adds,
		"trieNodes":     t.nodes,
		"rootBranches":  len(t.root.children),
	}
}

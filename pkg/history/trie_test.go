package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIncrementsEveryEdgeOnThePath(t *testing.T) {
	trie := NewTrie()
	trie.Add("git commit -m 'first message'")

	cur := trie.root
	for _, tok := range []string{"git", "commit", "-m", "'first message'"} {
		next, ok := cur.children[tok]
		require.True(t, ok, "missing edge for %q", tok)
		assert.GreaterOrEqual(t, next.freq, 1)
		cur = next
	}
	assert.True(t, cur.leaf())
}

func TestAddEmptyLineIsNoOp(t *testing.T) {
	trie := NewTrie()
	trie.Add("")
	trie.Add("   ")

	assert.Empty(t, trie.root.children)
	assert.Equal(t, 0, trie.Stats()["recordedLines"])
}

func TestAddExtendsPastFormerLeaf(t *testing.T) {
	trie := NewTrie()
	trie.Add("git checkout")

	checkout := trie.root.children["git"].children["checkout"]
	assert.True(t, checkout.leaf())

	trie.Add("git checkout master")
	assert.False(t, checkout.leaf())
	assert.Equal(t, 2, checkout.freq)
	assert.Equal(t, 1, checkout.children["master"].freq)
}

func TestReplayingHistoryTwiceDoublesFrequencies(t *testing.T) {
	lines := []string{"git status", "git pull", "git pull"}

	once := NewTrie()
	twice := NewTrie()
	for _, l := range lines {
		once.Add(l)
		twice.Add(l)
		twice.Add(l)
	}

	for _, tok := range []string{"status", "pull"} {
		a := once.root.children["git"].children[tok].freq
		b := twice.root.children["git"].children[tok].freq
		assert.Equal(t, 2*a, b)
	}

	// Doubling the counts must not change suggestion ordering.
	assert.Equal(t, once.ContinuationsFor("git "), twice.ContinuationsFor("git "))
}

func TestStats(t *testing.T) {
	trie := NewTrie()
	trie.Add("git status")
	trie.Add("git pull")
	trie.Add("ls -la")

	// Nodes: git, status, pull, ls, -la.
	stats := trie.Stats()
	assert.Equal(t, 3, stats["recordedLines"])
	assert.Equal(t, 2, stats["rootBranches"])
	assert.Equal(t, 5, stats["trieNodes"])
}

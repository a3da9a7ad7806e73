package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func trieWith(lines ...string) *Trie {
	trie := NewTrie()
	for _, l := range lines {
		trie.Add(l)
	}
	return trie
}

func TestEmptyInputYieldsNoSuggestions(t *testing.T) {
	trie := trieWith("git status", "ls -la")

	assert.Empty(t, trie.ContinuationsFor(""))
	assert.Empty(t, trie.ContinuationsFor("   "))
}

func TestUnknownPrefixYieldsNoSuggestions(t *testing.T) {
	trie := trieWith("git status")

	assert.Empty(t, trie.ContinuationsFor("svn st"))
	assert.Empty(t, trie.ContinuationsFor("git push ori"))
	assert.Empty(t, trie.ContinuationsFor("git xyz"))
}

func TestFrequencyRanking(t *testing.T) {
	trie := trieWith("git status", "git pull", "git pull")

	got := trie.ContinuationsFor("git ")
	assert.Equal(t, []Suggestion{
		{Value: "pull", Space: false},
		{Value: "status", Space: false},
	}, got)
}

func TestFrequencyTiesKeepDiscoveryOrder(t *testing.T) {
	trie := trieWith("git status", "git pull", "git push")

	got := trie.ContinuationsFor("git ")
	assert.Equal(t, []Suggestion{
		{Value: "status", Space: false},
		{Value: "pull", Space: false},
		{Value: "push", Space: false},
	}, got)
}

func TestQuotedLiteralSuggestedVerbatim(t *testing.T) {
	trie := trieWith("git commit -m 'first message'")

	got := trie.ContinuationsFor("git commit -m ")
	assert.Equal(t, []Suggestion{
		{Value: "'first message'", Space: false},
	}, got)
}

func TestExactPrefixIsCaseSensitive(t *testing.T) {
	trie := trieWith("git Status", "git status")

	// "st" exact-matches only the lowercase child, so the capitalized one
	// never enters the candidate set.
	got := trie.ContinuationsFor("git st")
	assert.Equal(t, []Suggestion{{Value: "status", Space: false}}, got)
}

func TestFuzzyFallbackOnSubTokens(t *testing.T) {
	trie := trieWith("git cherry-pick")

	got := trie.ContinuationsFor("git pi")
	assert.Equal(t, []Suggestion{{Value: "cherry-pick", Space: false}}, got)
}

func TestFuzzyFallbackIsCaseInsensitive(t *testing.T) {
	trie := trieWith("git status")

	got := trie.ContinuationsFor("git ST")
	assert.Equal(t, []Suggestion{{Value: "status", Space: false}}, got)
}

func TestFuzzyNotUsedWhenExactPrefixMatches(t *testing.T) {
	trie := trieWith("git checkout", "git cherry-pick")

	// "ch" exact-matches both; the fuzzy pass never runs.
	got := trie.ContinuationsFor("git ch")
	assert.Len(t, got, 2)
	assert.Equal(t, "checkout", got[0].Value)
	assert.Equal(t, "cherry-pick", got[1].Value)
}

func TestDeepChainSuggestion(t *testing.T) {
	trie := trieWith("git commit", "git checkout master --option")

	got := trie.ContinuationsFor("git ch")
	assert.Equal(t, []Suggestion{
		{Value: "checkout", Space: true},
		{Value: "checkout master --option", Space: false},
	}, got)
}

func TestDeepChainSuppressedByMultipleCandidates(t *testing.T) {
	trie := trieWith("git commit", "git checkout master")

	got := trie.ContinuationsFor("git c")
	assert.Equal(t, []Suggestion{
		{Value: "commit", Space: false},
		{Value: "checkout", Space: true},
	}, got)
}

func TestDeepChainSuppressedByBranchBelow(t *testing.T) {
	trie := trieWith("git checkout master", "git checkout develop")

	got := trie.ContinuationsFor("git ch")
	assert.Equal(t, []Suggestion{{Value: "checkout", Space: true}}, got)
}

func TestNoDeepChainForLeafCandidate(t *testing.T) {
	trie := trieWith("git status")

	got := trie.ContinuationsFor("git st")
	assert.Equal(t, []Suggestion{{Value: "status", Space: false}}, got)
}

func TestSuggestionValueIsAlwaysTheFullToken(t *testing.T) {
	trie := trieWith("kubectl")

	got := trie.ContinuationsFor("kube")
	assert.Equal(t, []Suggestion{{Value: "kubectl", Space: false}}, got)
}

func TestContinuationsDoNotMutateTheTrie(t *testing.T) {
	trie := trieWith("git status")

	before := trie.Stats()
	trie.ContinuationsFor("git ")
	trie.ContinuationsFor("git nonexistent ")
	assert.Equal(t, before, trie.Stats())
}

func TestPartialInsideUnterminatedQuote(t *testing.T) {
	trie := trieWith("git commit -m 'first message'")

	got := trie.ContinuationsFor("git commit -m 'fir")
	assert.Equal(t, []Suggestion{
		{Value: "'first message'", Space: false},
	}, got)
}

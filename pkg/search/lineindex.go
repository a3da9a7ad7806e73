// Package search provides whole-line prefix search over recorded command
// lines, ranked by how often each exact line was executed.
package search

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Match is one historical line found by a prefix search.
type Match struct {
	Line      string
	Frequency int
}

// LineIndex keeps every distinct recorded line in a patricia trie with its
// execution count as the item. Unlike the token trie, it answers
// whole-line questions: "which commands did I run that start with these
// characters". Safe for concurrent use.
type LineIndex struct {
	mu    sync.RWMutex
	trie  *patricia.Trie
	lines int
	total int
}

// NewLineIndex returns an empty index.
func NewLineIndex() *LineIndex {
	return &LineIndex{trie: patricia.NewTrie()}
}

// Record counts one execution of line. Empty lines are ignored.
func (ix *LineIndex) Record(line string) {
	if line == "" {
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	key := patricia.Prefix(line)
	freq := 1
	if item := ix.trie.Get(key); item != nil {
		n, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for line %s", item, line)
			n = 0
		}
		freq = n + 1
	} else {
		ix.lines++
	}
	// Set, not Insert: Insert refuses to overwrite an existing key.
	ix.trie.Set(key, freq)
	ix.total++
}

// Add records one execution of line. It exists so the index can be
// replayed from a history log the same way the token trie is.
func (ix *LineIndex) Add(line string) {
	ix.Record(line)
}

// Search returns the recorded lines starting with prefix, most frequent
// first, ties ordered lexicographically. A non-positive limit means no
// limit. An empty prefix matches nothing.
func (ix *LineIndex) Search(prefix string, limit int) []Match {
	if prefix == "" {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var matches []Match
	err := ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		freq, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for line %s", item, p)
			freq = 1
		}
		matches = append(matches, Match{Line: string(p), Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting line index subtree: %v", err)
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Frequency != matches[j].Frequency {
			return matches[i].Frequency > matches[j].Frequency
		}
		return matches[i].Line < matches[j].Line
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Stats returns statistics about the indexed lines
func (ix *LineIndex) Stats() map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return map[string]int{
		"distinctLines": ix.lines,
		"totalRecords":  ix.total,
	}
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRanksByFrequency(t *testing.T) {
	ix := NewLineIndex()
	ix.Record("git status")
	ix.Record("git pull")
	ix.Record("git pull")
	ix.Record("git push origin main")

	got := ix.Search("git p", 0)
	assert.Equal(t, []Match{
		{Line: "git pull", Frequency: 2},
		{Line: "git push origin main", Frequency: 1},
	}, got)
}

func TestSearchTiesAreLexicographic(t *testing.T) {
	ix := NewLineIndex()
	ix.Record("git rebase")
	ix.Record("git pull")

	got := ix.Search("git ", 0)
	assert.Equal(t, []Match{
		{Line: "git pull", Frequency: 1},
		{Line: "git rebase", Frequency: 1},
	}, got)
}

func TestSearchLimit(t *testing.T) {
	ix := NewLineIndex()
	ix.Record("ls")
	ix.Record("ls -l")
	ix.Record("ls -la")

	assert.Len(t, ix.Search("ls", 2), 2)
	assert.Len(t, ix.Search("ls", 0), 3)
}

func TestSearchEmptyPrefix(t *testing.T) {
	ix := NewLineIndex()
	ix.Record("ls")

	assert.Empty(t, ix.Search("", 0))
}

func TestRecordIgnoresEmptyLines(t *testing.T) {
	ix := NewLineIndex()
	ix.Record("")

	stats := ix.Stats()
	assert.Equal(t, 0, stats["distinctLines"])
	assert.Equal(t, 0, stats["totalRecords"])
}

func TestStatsCountDistinctAndTotal(t *testing.T) {
	ix := NewLineIndex()
	ix.Record("git pull")
	ix.Record("git pull")
	ix.Record("git status")

	stats := ix.Stats()
	assert.Equal(t, 2, stats["distinctLines"])
	assert.Equal(t, 3, stats["totalRecords"])
}

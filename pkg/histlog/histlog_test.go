package histlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histserve/histserve/pkg/history"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPlainLog(t *testing.T) {
	path := writeLog(t, "git status\n\nls -la\n")

	lines, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"git status", "ls -la"}, lines)
}

func TestLoadUnwrapsZshExtendedFormat(t *testing.T) {
	path := writeLog(t, ": 1700000000:0;git status\n: 1700000005:2;make build\n")

	lines, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"git status", "make build"}, lines)
}

func TestLoadKeepsMostRecentLines(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\nfour\n")

	lines, err := Load(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "four"}, lines)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"), 0)
	assert.Error(t, err)
}

func TestReplayFeedsTheTrie(t *testing.T) {
	trie := history.NewTrie()
	n := Replay(trie, []string{"git pull", "git pull", "git status"})

	assert.Equal(t, 3, n)
	got := trie.ContinuationsFor("git ")
	require.Len(t, got, 2)
	assert.Equal(t, "pull", got[0].Value)
}

func TestAppenderPersistsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	app, err := NewAppender(path)
	require.NoError(t, err)
	require.NoError(t, app.Append("git status"))
	require.NoError(t, app.Append("   "))
	require.NoError(t, app.Append("ls"))
	require.NoError(t, app.Close())

	lines, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"git status", "ls"}, lines)
}

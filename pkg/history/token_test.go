package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSplitsOnWhitespaceRuns(t *testing.T) {
	assert.Equal(t, []string{"git", "status"}, Tokenize("git status"))
	assert.Equal(t, []string{"git", "status"}, Tokenize("  git   status  "))
	assert.Equal(t, []string{"git", "status"}, Tokenize("git\tstatus"))
	assert.Equal(t, []string{"ls"}, Tokenize("ls"))
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   "))
	assert.Empty(t, Tokenize(" \t "))
}

func TestTokenizeKeepsQuotedLiteralsWhole(t *testing.T) {
	assert.Equal(t,
		[]string{"git", "commit", "-m", "'first message'"},
		Tokenize("git commit -m 'first message'"))

	assert.Equal(t,
		[]string{"echo", `"hello   world"`},
		Tokenize(`echo "hello   world"`))

	// A single-quoted literal does not close on a double quote and
	// vice versa.
	assert.Equal(t,
		[]string{"echo", `'a "b" c'`},
		Tokenize(`echo 'a "b" c'`))
}

func TestTokenizeQuoteOpeningMidToken(t *testing.T) {
	assert.Equal(t,
		[]string{"grep", "-e'a b'"},
		Tokenize("grep -e'a b'"))
}

func TestTokenizeUnterminatedQuoteRunsToEndOfLine(t *testing.T) {
	assert.Equal(t,
		[]string{"git", "commit", "-m", "'work in progress"},
		Tokenize("git commit -m 'work in progress"))
}

func TestScanReportsOpenToken(t *testing.T) {
	tokens, open := scan("git sta")
	assert.Equal(t, []string{"git", "sta"}, tokens)
	assert.True(t, open)

	tokens, open = scan("git ")
	assert.Equal(t, []string{"git"}, tokens)
	assert.False(t, open)

	// Whitespace inside an unterminated quote does not end the token.
	tokens, open = scan("git commit -m 'first ")
	assert.Equal(t, []string{"git", "commit", "-m", "'first "}, tokens)
	assert.True(t, open)
}

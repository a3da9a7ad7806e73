package history

import (
	"strings"
	"unicode"
)

// Tokenizer states. Quote matching is not nested: the first quote rune
// opens a literal that closes at the next occurrence of the same rune.
const (
	scanNormal = iota
	scanSingleQuote
	scanDoubleQuote
)

// Tokenize splits a command line into tokens on runs of whitespace.
// A substring delimited by matching single or double quotes is kept as one
// token, quote characters included, even when it contains whitespace.
// An unterminated quote extends the literal to the end of the line.
// Empty and whitespace-only lines produce no tokens.
func Tokenize(line string) []string {
	tokens, _ := scan(line)
	return tokens
}

// scan is the tokenizer state machine. The second return value reports
// whether the line ended in the middle of a token, which is how the
// resolver tells a partial word apart from input ending in whitespace.
func scan(line string) ([]string, bool) {
	var tokens []string
	var cur strings.Builder
	state := scanNormal

	for _, r := range line {
		switch state {
		case scanNormal:
			switch {
			case r == '\'':
				cur.WriteRune(r)
				state = scanSingleQuote
			case r == '"':
				cur.WriteRune(r)
				state = scanDoubleQuote
			case unicode.IsSpace(r):
				if cur.Len() > 0 {
					tokens = append(tokens, cur.String())
					cur.Reset()
				}
			default:
				cur.WriteRune(r)
			}
		case scanSingleQuote:
			cur.WriteRune(r)
			if r == '\'' {
				state = scanNormal
			}
		case scanDoubleQuote:
			cur.WriteRune(r)
			if r == '"' {
				state = scanNormal
			}
		}
	}

	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
		return tokens, true
	}
	return tokens, false
}

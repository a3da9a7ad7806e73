package history

import (
	"github.com/histserve/histserve/internal/utils"
)

// fuzzyMatch reports whether a recorded token plausibly continues the
// partial word once exact prefix matching has failed. A token matches when
// its whole value starts with the partial case-insensitively, or when any
// of its sub-tokens does. Sub-tokens are the segments of the value split on
// `-`, `_`, `:` and `/`, so "pi" reaches "cherry-pick" and "up" reaches
// "feature/updates".
func fuzzyMatch(value, partial string) bool {
	if utils.HasPrefixIgnoreCase(value, partial) {
		return true
	}
	for _, sub := range utils.SplitSubTokens(value) {
		if utils.HasPrefixIgnoreCase(sub, partial) {
			return true
		}
	}
	return false
}

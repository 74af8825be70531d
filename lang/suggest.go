package lang

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns up to n of candidates that fuzzily match word, best match
// first, for "did you mean" diagnostics.
func Suggest(word string, candidates []string, n int) []string {
	if word == "" || len(candidates) == 0 {
		return nil
	}

	lower := make([]string, len(candidates))
	for i, c := range candidates {
		lower[i] = strings.ToLower(c)
	}

	matches := fuzzy.Find(strings.ToLower(word), lower)

	out := make([]string, 0, min(n, len(matches)))

	for _, m := range matches {
		if len(out) == n {
			break
		}

		out = append(out, candidates[m.Index])
	}

	return out
}

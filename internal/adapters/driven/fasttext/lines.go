package fasttext

import "strings"

// ParseLines splits text into one token list per non-empty line.
// Runs of separators never produce empty tokens.
func ParseLines(text string) [][]string {
	var out [][]string
	for _, line := range strings.Split(text, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		out = append(out, tokens)
	}
	return out
}

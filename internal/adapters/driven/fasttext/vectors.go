package fasttext

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// VectorParser parses one float vector per output line.
type VectorParser struct {
	// SkipLeading drops the first token of every line. Word vector lines
	// start with the word itself.
	SkipLeading bool

	// Strip lists echoed text to remove from the start of a line before
	// tokenising, in output order: the n-th non-blank line is matched
	// against Strip[n] first, then against every entry longest first.
	// A prefix is only removed at a whitespace boundary.
	Strip []string
}

// WordVectorParser parses print-word-vectors output.
func WordVectorParser() VectorParser {
	return VectorParser{SkipLeading: true}
}

// SentenceVectorParser parses print-sentence-vectors output for the
// given input sentences.
func SentenceVectorParser(sentences []string) VectorParser {
	return VectorParser{Strip: sentences}
}

// Parse returns the vectors in output order. Lines with no values are
// dropped. A token that is not a float is a *domain.ParseError.
func (p VectorParser) Parse(text string) ([][]float64, error) {
	var out [][]float64
	n := 0
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(p.strip(line, n))
		n++
		if p.SkipLeading && len(fields) > 0 {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}

		vec := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &domain.ParseError{Line: i + 1, Content: line, Reason: "invalid vector component " + strconv.Quote(f)}
			}
			vec = append(vec, v)
		}
		out = append(out, vec)
	}
	return out, nil
}

func (p VectorParser) strip(line string, n int) string {
	if n < len(p.Strip) {
		if rest, ok := cutEcho(line, p.Strip[n]); ok {
			return rest
		}
	}

	// Longest first, so "the cat sat" is not cut down to "the cat".
	candidates := append([]string(nil), p.Strip...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	for _, s := range candidates {
		if rest, ok := cutEcho(line, s); ok {
			return rest
		}
	}
	return line
}

func cutEcho(line, echo string) (string, bool) {
	if echo == "" || !strings.HasPrefix(line, echo) {
		return "", false
	}
	rest := line[len(echo):]
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return rest, true
	}
	return "", false
}

package fasttext

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ParseLabelScores parses lines of alternating label and score tokens.
// Label order within a line is kept as emitted.
func ParseLabelScores(text string) ([][]domain.ScoredLabel, error) {
	var out [][]domain.ScoredLabel
	for i, line := range strings.Split(text, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens)%2 != 0 {
			return nil, &domain.ParseError{Line: i + 1, Content: line, Reason: "odd token count for label/score pairs"}
		}

		labels := make([]domain.ScoredLabel, 0, len(tokens)/2)
		for j := 0; j < len(tokens); j += 2 {
			score, err := strconv.ParseFloat(tokens[j+1], 64)
			if err != nil {
				return nil, &domain.ParseError{Line: i + 1, Content: line, Reason: "invalid score " + strconv.Quote(tokens[j+1])}
			}
			labels = append(labels, domain.ScoredLabel{Label: tokens[j], Score: score})
		}
		out = append(out, labels)
	}
	return out, nil
}

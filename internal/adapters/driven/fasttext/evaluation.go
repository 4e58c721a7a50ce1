package fasttext

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ParseEvaluation parses the key/value lines printed by the test
// subcommand:
//
//	N	3000
//	P@1	0.812
//	R@1	0.812
//
// Other lines are ignored. N and P@k are required.
func ParseEvaluation(text string) (domain.EvaluationResult, error) {
	var (
		res          domain.EvaluationResult
		seenN, seenP bool
	)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		key, value := fields[0], fields[1]

		switch {
		case key == "N":
			n, err := strconv.Atoi(value)
			if err != nil {
				return res, &domain.ParseError{Line: i + 1, Content: line, Reason: "invalid example count"}
			}
			res.Examples = n
			seenN = true
		case strings.HasPrefix(key, "P@"), strings.HasPrefix(key, "R@"):
			k, err := strconv.Atoi(key[2:])
			if err != nil {
				return res, &domain.ParseError{Line: i + 1, Content: line, Reason: "invalid k in metric name"}
			}
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return res, &domain.ParseError{Line: i + 1, Content: line, Reason: "invalid metric value"}
			}
			res.K = k
			if key[0] == 'P' {
				res.Precision = v
				seenP = true
			} else {
				res.Recall = v
			}
		}
	}

	if !seenN || !seenP {
		return res, &domain.ParseError{Line: len(lines), Content: text, Reason: "missing N or P@k line"}
	}
	return res, nil
}

package fasttext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// Prompts the tool prints before reading each query.
const (
	NearestPrompt   = "Query word? "
	AnalogiesPrompt = "Query triplet (A - B + C)? "
)

// blockState is the position of the block scanner within one block.
type blockState int

const (
	// awaitingFirstLine: no echoed query line has been consumed, so a
	// 4-field line is read as echo + result.
	awaitingFirstLine blockState = iota

	// inBlock: the echoed query line was consumed. Another 4-field line
	// is the next query's echo and ends this block.
	inBlock

	// blockClosed: the block ended at a prompt or a second 4-field line.
	blockClosed
)

func (s blockState) String() string {
	switch s {
	case awaitingFirstLine:
		return "AwaitingFirstLine"
	case inBlock:
		return "InBlock"
	case blockClosed:
		return "BlockClosed"
	default:
		return "unknown"
	}
}

// BlockParser parses output where each query's results follow a literal
// prompt. One block is produced per prompt occurrence that yields results.
type BlockParser struct {
	Prompt string
}

// Parse returns one label list per non-empty block, in output order.
//
// Inside a block, blank lines are skipped, "<label> <score>" lines are
// results, and the first "<q1> <q2> <label> <score>" line is a result
// behind an echoed query. A later 4-field line or a line containing the
// prompt closes the block. Any other line is a *domain.ParseError.
func (p BlockParser) Parse(text string) ([][]domain.ScoredLabel, error) {
	if p.Prompt == "" {
		return nil, fmt.Errorf("%w: block parser needs a prompt", domain.ErrInvalidInput)
	}

	var out [][]domain.ScoredLabel
	offset := 0
	for {
		idx := strings.Index(text[offset:], p.Prompt)
		if idx < 0 {
			break
		}
		start := offset + idx + len(p.Prompt)

		block, err := p.scanBlock(text, start)
		if err != nil {
			return nil, err
		}
		if len(block) > 0 {
			out = append(out, block)
		}
		offset = start
	}
	return out, nil
}

// scanBlock reads results from text[start:] until the block closes.
func (p BlockParser) scanBlock(text string, start int) ([]domain.ScoredLabel, error) {
	firstLine := 1 + strings.Count(text[:start], "\n")
	state := awaitingFirstLine

	var results []domain.ScoredLabel
	for i, line := range strings.Split(text[start:], "\n") {
		if state == blockClosed {
			break
		}
		lineNo := firstLine + i

		if strings.Contains(line, p.Prompt) {
			state = blockClosed
			continue
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case len(fields) == 2:
			r, err := scoredLabel(fields[0], fields[1], lineNo, line)
			if err != nil {
				return nil, err
			}
			results = append(results, r)
		case len(fields) == 4 && state == awaitingFirstLine:
			r, err := scoredLabel(fields[2], fields[3], lineNo, line)
			if err != nil {
				return nil, err
			}
			results = append(results, r)
			state = inBlock
		case len(fields) == 4:
			state = blockClosed
		default:
			return nil, &domain.ParseError{
				Line:    lineNo,
				Content: line,
				Reason:  fmt.Sprintf("unexpected %d-field line in %s block", len(fields), state),
			}
		}
	}
	return results, nil
}

func scoredLabel(label, score string, lineNo int, line string) (domain.ScoredLabel, error) {
	v, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return domain.ScoredLabel{}, &domain.ParseError{
			Line:    lineNo,
			Content: line,
			Reason:  "invalid score " + strconv.Quote(score),
		}
	}
	return domain.ScoredLabel{Label: label, Score: v}, nil
}

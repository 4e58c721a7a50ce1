package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q (want text, json or yaml)", domain.ErrInvalidInput, s)
	}
}

// render writes v as JSON or YAML when requested, and otherwise calls text.
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

// heading prints a section title, styled when writing to a terminal.
func heading(w io.Writer, title string) {
	if isTerminal(w) {
		fmt.Fprintln(w, headingStyle.Render(title))
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatVector renders a vector the way the tool prints it.
func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func formatFloat32s(v []float32) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(float64(x), 'g', -1, 32)
	}
	return strings.Join(parts, " ")
}

func formatLabels(labels []domain.ScoredLabel) string {
	parts := make([]string, 0, 2*len(labels))
	for _, l := range labels {
		parts = append(parts, l.Label, strconv.FormatFloat(l.Score, 'f', 5, 64))
	}
	return strings.Join(parts, " ")
}

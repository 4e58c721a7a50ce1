package fasttext

import (
	"sort"
	"strings"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// RenderArgs renders "<command> -k1 v1 -k2 v2 ..." with keys sorted.
//
// Keys are written as given, so each key yields exactly one flag. Keys must
// be bare names; domain.TrainRequest.Validate rejects a leading dash.
// Values are not escaped. Values containing whitespace split into several
// shell words and are a caller error. Flags are not validated; the tool
// rejects unknown ones when it runs.
func RenderArgs(command string, opts domain.Options) string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(command)
	for _, k := range keys {
		b.WriteString(" -")
		b.WriteString(k)
		b.WriteByte(' ')
		b.WriteString(opts[k])
	}
	return b.String()
}

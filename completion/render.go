package completion

import (
	"encoding/json"
	"io"

	"github.com/pterm/pterm"
	"github.com/teranos/codecomplete/errors"
)

// Output formats understood by Render
const (
	FormatJSON = "json"
	FormatText = "text"
)

// CheckFormat rejects formats Render cannot write
func CheckFormat(format string) error {
	switch format {
	case FormatJSON, FormatText, "":
		return nil
	default:
		return errors.WithHintf(
			errors.InvalidArgument("unknown output format "+format),
			"use %q or %q", FormatJSON, FormatText)
	}
}

// Render writes items to w. JSON output is an indented array ("[]" when
// empty); text output is a table.
func Render(w io.Writer, format string, res Result) error {
	switch format {
	case FormatJSON, "":
		items := res.Items
		if items == nil {
			items = []Item{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		// Type names such as Array<Int> stay readable
		enc.SetEscapeHTML(false)
		return errors.Wrap(enc.Encode(items), "failed to write completion items")

	case FormatText:
		return renderTable(w, res)

	default:
		return CheckFormat(format)
	}
}

func renderTable(w io.Writer, res Result) error {
	if len(res.Items) == 0 {
		_, err := io.WriteString(w, "No completions\n")
		return errors.Wrap(err, "failed to write completion table")
	}

	data := pterm.TableData{{"NAME", "KIND", "TYPE", "INSERT"}}
	for _, it := range res.Items {
		name := it.Name
		if it.Deprecated {
			name += " (deprecated)"
		}
		data = append(data, []string{name, it.Kind, it.TypeName, it.SourceText})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render completion table")
	}
	if res.Incomplete {
		table += "\n" + pterm.Gray("(incomplete: keep typing to refine)")
	}
	_, err = io.WriteString(w, table+"\n")
	return errors.Wrap(err, "failed to write completion table")
}

package commands

import (
	"fmt"
	"io"

	"github.com/teranos/codecomplete/errors"
)

// ReportError writes err to w as "<kind>: <message>" followed by any hints.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if kind := errors.Kind(err); kind != "error" {
		fmt.Fprintf(w, "Error: %s: %v\n", kind, err)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}

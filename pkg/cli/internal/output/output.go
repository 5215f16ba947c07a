// Package output provides common output formatting utilities.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ohler55/ojg/jp"
)

// JSON writes indented JSON to w.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Query evaluates a JSONPath expression against v and writes the matches as
// indented JSON. A single match is written on its own, several as an array.
func Query(w io.Writer, v any, path string) error {
	expr, err := jp.ParseString(path)
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", path, err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return err
	}

	results := expr.Get(generic)
	switch len(results) {
	case 0:
		return fmt.Errorf("query %q matched nothing", path)
	case 1:
		return JSON(w, results[0])
	default:
		return JSON(w, results)
	}
}

// Table creates an aligned table writer for w.
// Remember to call Flush() when done writing.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Warn prints a warning message to w.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}

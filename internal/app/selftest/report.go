package selftest

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatText:
		return r.WriteText(w)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteJSON renders the report as a single indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteText renders one line per case followed by a summary line.
func (r *Report) WriteText(w io.Writer) error {
	for _, res := range r.Results {
		var err error
		if res.Passed {
			_, err = fmt.Fprintf(w, "ok   %s\n", res.Name)
		} else {
			_, err = fmt.Fprintf(w, "FAIL %s: %s\n", res.Name, res.Error)
		}
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	status := "PASS"
	if !r.OK() {
		status = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s run=%s passed=%d failed=%d\n", status, r.RunID, r.Passed, r.Failed); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

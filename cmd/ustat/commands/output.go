package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"ustat/internal/services/calculation"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case formatText, formatJSON, formatYAML:
		return &printer{w: w, format: format}, nil
	}
	return nil, fmt.Errorf("output %q: want text, json or yaml", format)
}

// print renders v as JSON or YAML, or calls text for the human format.
func (p *printer) print(v any, text func(w io.Writer)) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		// Going through JSON keeps the wire field names and their order.
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var node yaml.Node
		if err := yaml.Unmarshal(b, &node); err != nil {
			return err
		}
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
		text(tw)
		return tw.Flush()
	}
}

// message prints a one-line confirmation; structured formats get {"message": msg}.
func (p *printer) message(msg string) error {
	return p.print(map[string]string{"message": msg}, func(w io.Writer) {
		fmt.Fprintln(w, msg)
	})
}

// printResult prints a calculation result with keys sorted. Fractional
// numbers are shown as Turkish lira amounts.
func printResult(w io.Writer, res map[string]any) {
	keys := make([]string, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, formatValue(res[k]))
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return fmt.Sprintf("%.0f", x)
		}
		return calculation.FormatTRY(x)
	case nil:
		return "-"
	case map[string]any, []any:
		b, _ := json.Marshal(x)
		return string(b)
	}
	return fmt.Sprint(v)
}

// Package output implements the four record formatters the CLI exposes
// via --format (spec.md §6): a tabwriter-based table, CSV, JSON, and
// JSON-lines.
package output

import "fmt"

// Format selects an output encoding.
type Format string

const (
	Text  Format = "text"
	CSV   Format = "csv"
	JSON  Format = "json"
	JSONL Format = "jsonl"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Text, CSV, JSON, JSONL:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, csv, json, or jsonl)", s)
	}
}

// Package output provides report writers for pricing verdicts.
// This package produces human and machine-readable outputs.
package output

import (
	"io"

	"pricing-truth/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatJSON is the machine-readable JSON report
	FormatJSON Format = "json"

	// FormatMarkdown is the human-readable Markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces a report in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report for the given verdict
	Render(w io.Writer, verdict types.PricingVerdict) error
}

// ForFormat returns the formatter for a format name, defaulting to JSON.
func ForFormat(format string) Formatter {
	switch Format(format) {
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &JSONFormatter{}
	}
}

// Package output - Markdown report writer
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pricing-truth/core/types"
	"pricing-truth/internal/errors"
)

// MarkdownFormatter renders the human-readable Markdown report.
type MarkdownFormatter struct{}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the Markdown report: inputs, evidence summary, competitor
// comparison table, verdict, gaps, and citations.
func (f *MarkdownFormatter) Render(w io.Writer, verdict types.PricingVerdict) error {
	var b strings.Builder
	product := verdict.EvidenceBundle.ProductInput

	b.WriteString("# Pricing Analysis Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))

	b.WriteString("## Inputs\n\n")
	fmt.Fprintf(&b, "- **Product:** %s\n", product.Name)
	fmt.Fprintf(&b, "- **URL:** %s\n", product.URL)
	fmt.Fprintf(&b, "- **Current price:** %s\n", product.CurrentPrice)
	if product.Category != "" {
		fmt.Fprintf(&b, "- **Category:** %s\n", product.Category)
	}
	if product.TargetCustomer != "" {
		fmt.Fprintf(&b, "- **Target customer:** %s\n", product.TargetCustomer)
	}
	if product.PaymentModel != "" {
		fmt.Fprintf(&b, "- **Payment model:** %s\n", product.PaymentModel)
	}
	b.WriteString("\n")

	b.WriteString("## Evidence Summary\n\n")
	fmt.Fprintf(&b, "- Sources retrieved: %d\n", len(verdict.EvidenceBundle.Sources))
	fmt.Fprintf(&b, "- Competitor domains analyzed: %d\n", len(verdict.EvidenceBundle.CompetitorPricing))
	fmt.Fprintf(&b, "- Comparable competitors: %d\n\n", verdict.CompetitorCount)

	b.WriteString("## Competitor Comparison\n\n")
	if len(verdict.EvidenceBundle.CompetitorPricing) == 0 {
		b.WriteString("No competitor pricing data found.\n\n")
	} else {
		b.WriteString("| Domain | Monthly USD | Cadence | Attributes | Gaps |\n")
		b.WriteString("|--------|-------------|---------|------------|------|\n")
		for _, comp := range verdict.EvidenceBundle.CompetitorPricing {
			price := "—"
			if comp.NormalizedMonthlyUSD != nil {
				price = fmt.Sprintf("$%.2f", *comp.NormalizedMonthlyUSD)
			}
			cadence := string(comp.Cadence)
			if cadence == "" {
				cadence = "—"
			}
			attrs := "—"
			if comp.HasAttributes() {
				attrs = "extracted"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n", comp.Domain, price, cadence, attrs, len(comp.Gaps))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Verdict\n\n")
	fmt.Fprintf(&b, "**Status:** %s\n\n", verdict.Status)
	fmt.Fprintf(&b, "**Confidence:** %.2f\n\n", verdict.Confidence)
	for _, reason := range verdict.KeyReasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}
	b.WriteString("\n")

	b.WriteString("## Gaps & Limitations\n\n")
	if len(verdict.Gaps) == 0 {
		b.WriteString("No data gaps identified.\n\n")
	} else {
		for _, gap := range verdict.Gaps {
			fmt.Fprintf(&b, "- %s\n", gap)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Citations\n\n")
	if len(verdict.Citations) == 0 {
		b.WriteString("No citations available.\n")
	} else {
		for i, citation := range verdict.Citations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, citation)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Report("writing markdown report", err)
	}
	return nil
}

// WriteMarkdownReport writes the Markdown report to a file, creating parent
// directories as needed.
func WriteMarkdownReport(verdict types.PricingVerdict, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Report("creating report directory", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Report("creating report file", err)
	}
	defer file.Close()

	formatter := &MarkdownFormatter{}
	return formatter.Render(file, verdict)
}

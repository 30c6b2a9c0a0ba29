// Package output - JSON report writer
package output

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pricing-truth/core/types"
	"pricing-truth/internal/errors"
)

// SchemaVersion identifies the report envelope schema.
const SchemaVersion = "1.0"

// Report is the machine-readable report envelope: the verdict object plus a
// metadata object. Field names are part of the external contract.
type Report struct {
	Verdict  types.PricingVerdict `json:"verdict"`
	Metadata ReportMetadata       `json:"metadata"`
}

// ReportMetadata describes the report itself, not the verdict.
type ReportMetadata struct {
	// SchemaVersion is the envelope schema version
	SchemaVersion string `json:"schema_version"`

	// GeneratedFor is the name of the analyzed product
	GeneratedFor string `json:"generated_for"`

	// GeneratedAt is the report timestamp, RFC 3339
	GeneratedAt string `json:"generated_at"`

	// ReportID uniquely identifies this report
	ReportID string `json:"report_id"`
}

// NewReport wraps a verdict in the report envelope.
func NewReport(verdict types.PricingVerdict) Report {
	return Report{
		Verdict: verdict,
		Metadata: ReportMetadata{
			SchemaVersion: SchemaVersion,
			GeneratedFor:  verdict.EvidenceBundle.ProductInput.Name,
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			ReportID:      uuid.NewString(),
		},
	}
}

// JSONFormatter renders the JSON report envelope.
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the indented JSON envelope.
func (f *JSONFormatter) Render(w io.Writer, verdict types.PricingVerdict) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(NewReport(verdict)); err != nil {
		return errors.Report("encoding JSON report", err)
	}
	return nil
}

// WriteJSONReport writes the JSON report to a file, creating parent
// directories as needed, and re-reads it to verify the envelope shape.
func WriteJSONReport(verdict types.PricingVerdict, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Report("creating report directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Report("creating report file", err)
	}
	formatter := &JSONFormatter{}
	if err := formatter.Render(file, verdict); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Report("closing report file", err)
	}

	// Round-trip check: the written report must parse back into the envelope
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Report("re-reading report file", err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Report("validating report JSON", err)
	}
	if _, ok := envelope["verdict"]; !ok {
		return errors.Report("report missing verdict object", nil)
	}
	if _, ok := envelope["metadata"]; !ok {
		return errors.Report("report missing metadata object", nil)
	}
	return nil
}

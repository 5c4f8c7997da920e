// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"
	"time"

	"piiscan/internal/formatters"
	"piiscan/internal/report"
	"piiscan/internal/scan"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(rep *scan.Report, compliance *report.ComplianceReport, options formatters.Options) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var sb strings.Builder

	sb.WriteString(f.colors["white"].Sprint("PII Scan Report"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Scan ID:  %s\n", rep.ScanID))
	sb.WriteString(fmt.Sprintf("Database: %s\n", rep.Database))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", rep.CompletedAt.Sub(rep.StartedAt).Round(10*time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Tables:   %d scanned, %d succeeded, %d partial, %d failed\n",
		rep.TablesScanned, rep.Succeeded, rep.Partial, rep.Failed))
	sb.WriteString("\n")

	if rep.TotalFindings == 0 {
		sb.WriteString(f.colors["green"].Sprint("No PII findings above the confidence threshold."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(f.colors["white"].Sprintf("Findings (%d)", rep.TotalFindings))
		sb.WriteString("\n")
		for _, tr := range rep.Tables {
			if len(tr.Findings) == 0 && tr.Status == scan.StatusSuccess {
				continue
			}
			sb.WriteString(f.formatTable(tr, options))
		}
	}

	if compliance != nil {
		sb.WriteString(f.formatCompliance(compliance))
	}

	return sb.String(), nil
}

func (f *Formatter) formatTable(tr scan.TableReport, options formatters.Options) string {
	var sb strings.Builder

	status := f.colors["green"].Sprint(tr.Status)
	switch tr.Status {
	case scan.StatusFailed:
		status = f.colors["red"].Sprint(tr.Status)
	case scan.StatusPartial:
		status = f.colors["yellow"].Sprint(tr.Status)
	}
	sb.WriteString(fmt.Sprintf("\n  %s [%s]\n", f.colors["cyan"].Sprint(tr.Table), status))
	if tr.Error != "" {
		sb.WriteString(fmt.Sprintf("    error: %s\n", tr.Error))
	}

	for _, finding := range tr.Findings {
		action := finding.Action
		switch action {
		case "ENCRYPT":
			action = f.colors["red"].Sprint(action)
		case "MASK":
			action = f.colors["yellow"].Sprint(action)
		}
		sb.WriteString(fmt.Sprintf("    %-24s %-22s %.2f  %s\n",
			finding.Column, finding.PIIType, finding.Confidence, action))
		if options.Verbose {
			sb.WriteString(fmt.Sprintf("      sample: %s\n", finding.MaskedSample))
			sb.WriteString(fmt.Sprintf("      reason: %s\n", finding.Reasoning))
			if finding.EncryptionKeyHint != "" {
				sb.WriteString(fmt.Sprintf("      key:    %s\n", finding.EncryptionKeyHint))
			}
			if len(finding.Regulations) > 0 {
				sb.WriteString(fmt.Sprintf("      flags:  %s\n", strings.Join(finding.Regulations, ", ")))
			}
		}
	}
	return sb.String()
}

func (f *Formatter) formatCompliance(cr *report.ComplianceReport) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(f.colors["white"].Sprint("Compliance Summary"))
	sb.WriteString("\n")
	for _, regName := range []string{"GDPR", "CCPA", "HIPAA"} {
		if n := cr.ByRegulation[regName]; n > 0 {
			sb.WriteString(fmt.Sprintf("  %-6s %d findings\n", regName, n))
		}
	}
	if len(cr.SpecialCategories) > 0 {
		sb.WriteString(f.colors["red"].Sprintf("  Special-category data in %d columns\n", len(cr.SpecialCategories)))
	}
	for _, rec := range cr.Recommendations {
		sb.WriteString(fmt.Sprintf("  - %s\n", rec))
	}
	return sb.String()
}

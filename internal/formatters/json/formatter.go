// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"piiscan/internal/formatters"
	"piiscan/internal/report"
	"piiscan/internal/scan"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON output"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// output is the JSON document shape: the scan report plus an optional
// compliance section.
type output struct {
	Scan       *scan.Report             `json:"scan"`
	Compliance *report.ComplianceReport `json:"compliance,omitempty"`
}

func (f *Formatter) Format(rep *scan.Report, compliance *report.ComplianceReport, options formatters.Options) (string, error) {
	data, err := json.MarshalIndent(output{Scan: rep, Compliance: compliance}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling to JSON: %w", err)
	}
	return string(data), nil
}

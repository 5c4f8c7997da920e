// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report builds compliance-oriented summaries from scan results,
// breaking findings down by regulation, action, and severity.
package report

import (
	"fmt"
	"sort"
	"time"

	"piiscan/internal/registry"
	"piiscan/internal/scan"
)

// SpecialCategoryFinding flags one column holding GDPR Article 9
// special-category data.
type SpecialCategoryFinding struct {
	Table   string `json:"table"`
	Column  string `json:"column"`
	PIIType string `json:"pii_type"`
}

// ComplianceReport summarizes one scan run for compliance review.
type ComplianceReport struct {
	ScanID            string                   `json:"scan_id"`
	Database          string                   `json:"database"`
	GeneratedAt       time.Time                `json:"generated_at"`
	TablesScanned     int                      `json:"tables_scanned"`
	TablesFailed      int                      `json:"tables_failed"`
	TotalFindings     int                      `json:"total_findings"`
	ByRegulation      map[string]int           `json:"by_regulation"`
	ByAction          map[string]int           `json:"by_action"`
	BySeverity        map[string]int           `json:"by_severity"`
	SpecialCategories []SpecialCategoryFinding `json:"special_categories,omitempty"`
	Recommendations   []string                 `json:"recommendations,omitempty"`
}

// Generate builds a compliance report from a completed scan.
func Generate(rep *scan.Report, reg *registry.Registry) ComplianceReport {
	cr := ComplianceReport{
		ScanID:        rep.ScanID,
		Database:      rep.Database,
		GeneratedAt:   time.Now().UTC(),
		TablesScanned: rep.TablesScanned,
		TablesFailed:  rep.Failed,
		TotalFindings: rep.TotalFindings,
		ByRegulation:  make(map[string]int),
		ByAction:      make(map[string]int),
		BySeverity:    make(map[string]int),
	}

	for _, tr := range rep.Tables {
		for _, f := range tr.Findings {
			for _, regName := range f.Regulations {
				cr.ByRegulation[regName]++
			}
			cr.ByAction[f.Action]++
			cr.BySeverity[string(reg.Severity(f.PIIType))]++

			if registry.SpecialCategories[f.PIIType] {
				cr.SpecialCategories = append(cr.SpecialCategories, SpecialCategoryFinding{
					Table:   tr.Table,
					Column:  f.Column,
					PIIType: f.PIIType,
				})
			}
		}
	}

	sort.Slice(cr.SpecialCategories, func(i, j int) bool {
		a, b := cr.SpecialCategories[i], cr.SpecialCategories[j]
		if a.Table != b.Table {
			return a.Table < b.Table
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.PIIType < b.PIIType
	})

	cr.Recommendations = recommendations(cr)
	return cr
}

func recommendations(cr ComplianceReport) []string {
	var recs []string

	if n := cr.ByAction["ENCRYPT"]; n > 0 {
		recs = append(recs, fmt.Sprintf("Immediate attention required: %d findings need encryption", n))
	}
	if n := len(cr.SpecialCategories); n > 0 {
		recs = append(recs, fmt.Sprintf("GDPR Article 9: %d columns hold special-category data and require an explicit lawful basis for processing", n))
	}
	if n := cr.ByRegulation[string(registry.HIPAA)]; n > 0 {
		recs = append(recs, fmt.Sprintf("HIPAA: %d findings involve protected health information", n))
	}
	if n := cr.ByAction["MASK"]; n > 0 {
		recs = append(recs, fmt.Sprintf("Apply masking to %d findings before exposing data to non-privileged consumers", n))
	}
	if cr.TablesFailed > 0 {
		recs = append(recs, fmt.Sprintf("Rescan required: %d tables could not be fully scanned", cr.TablesFailed))
	}

	return recs
}

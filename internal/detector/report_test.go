// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"testing"
)

func TestGenerateSummaryReport_RiskTiers(t *testing.T) {
	analyses := []ColumnAnalysis{
		{ColumnName: "ssn", RiskScore: 0.9, PIIMatches: []Match{{PatternType: "SSN"}}},
		{ColumnName: "email", RiskScore: 0.5, PIIMatches: []Match{{PatternType: "EMAIL"}}},
		{ColumnName: "notes", RiskScore: 0.1},
	}

	report := GenerateSummaryReport(analyses)

	if report.TotalColumnsAnalyzed != 3 {
		t.Errorf("total columns: got %d", report.TotalColumnsAnalyzed)
	}
	if report.HighRiskColumns != 1 || report.MediumRiskColumns != 1 || report.LowRiskColumns != 1 {
		t.Errorf("tier counts wrong: %+v", report)
	}
	if report.TotalPIIInstances != 2 {
		t.Errorf("expected 2 instances, got %d", report.TotalPIIInstances)
	}
	if len(report.HighRiskColumnNames) != 1 || report.HighRiskColumnNames[0] != "ssn" {
		t.Errorf("high-risk names wrong: %v", report.HighRiskColumnNames)
	}
}

func TestGenerateSummaryReport_TierBoundaries(t *testing.T) {
	report := GenerateSummaryReport([]ColumnAnalysis{
		{ColumnName: "a", RiskScore: 0.7}, // inclusive high boundary
		{ColumnName: "b", RiskScore: 0.4}, // inclusive medium boundary
		{ColumnName: "c", RiskScore: 0.39},
	})
	if report.HighRiskColumns != 1 || report.MediumRiskColumns != 1 || report.LowRiskColumns != 1 {
		t.Errorf("boundary classification wrong: %+v", report)
	}
}

func TestGenerateSummaryReport_HighRiskRecommendation(t *testing.T) {
	analyses := []ColumnAnalysis{
		{
			ColumnName: "patient_ssn",
			RiskScore:  0.95,
			PIIMatches: []Match{{PatternType: "SSN"}, {PatternType: "SSN"}, {PatternType: "PHONE"}},
		},
	}

	report := GenerateSummaryReport(analyses)

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "patient_ssn") &&
			strings.Contains(rec, "SSN") &&
			strings.Contains(rec, "encryption or tokenization") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an encryption recommendation naming the column, got %v", report.Recommendations)
	}
}

func TestGenerateSummaryReport_NameOnlyRecommendation(t *testing.T) {
	analyses := []ColumnAnalysis{
		{
			ColumnName:        "full_name",
			RiskScore:         0.2,
			SuspectedPIITypes: []string{"FULL_NAME"},
		},
	}

	report := GenerateSummaryReport(analyses)

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "Review column names") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a review-column-names recommendation, got %v", report.Recommendations)
	}
}

func TestGenerateSummaryReport_Empty(t *testing.T) {
	report := GenerateSummaryReport(nil)
	if report.TotalColumnsAnalyzed != 0 || len(report.Recommendations) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

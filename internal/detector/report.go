// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"fmt"
	"sort"
	"strings"
)

// SummaryReport classifies analyzed columns by risk tier and carries
// textual recommendations for remediation.
type SummaryReport struct {
	TotalColumnsAnalyzed int      `json:"total_columns_analyzed"`
	HighRiskColumns      int      `json:"high_risk_columns"`
	MediumRiskColumns    int      `json:"medium_risk_columns"`
	LowRiskColumns       int      `json:"low_risk_columns"`
	PIITypesDetected     []string `json:"pii_types_detected"`
	TotalPIIInstances    int      `json:"total_pii_instances"`
	HighRiskColumnNames  []string `json:"high_risk_column_names"`
	Recommendations      []string `json:"recommendations"`
}

// Risk tier boundaries: high >= 0.7, medium in [0.4, 0.7), low below.
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
	nameOnlyThreshold   = 0.3
)

// GenerateSummaryReport rolls column analyses up into scan-level statistics
// and recommendations.
func GenerateSummaryReport(analyses []ColumnAnalysis) SummaryReport {
	var high, medium []ColumnAnalysis
	for _, a := range analyses {
		switch {
		case a.RiskScore >= highRiskThreshold:
			high = append(high, a)
		case a.RiskScore >= mediumRiskThreshold:
			medium = append(medium, a)
		}
	}

	typesFound := make(map[string]struct{})
	totalInstances := 0
	for _, a := range analyses {
		for _, m := range a.PIIMatches {
			typesFound[m.PatternType] = struct{}{}
			totalInstances++
		}
	}

	types := make([]string, 0, len(typesFound))
	for t := range typesFound {
		types = append(types, t)
	}
	sort.Strings(types)

	highNames := make([]string, 0, len(high))
	for _, a := range high {
		highNames = append(highNames, a.ColumnName)
	}

	return SummaryReport{
		TotalColumnsAnalyzed: len(analyses),
		HighRiskColumns:      len(high),
		MediumRiskColumns:    len(medium),
		LowRiskColumns:       len(analyses) - len(high) - len(medium),
		PIITypesDetected:     types,
		TotalPIIInstances:    totalInstances,
		HighRiskColumnNames:  highNames,
		Recommendations:      recommendations(analyses, high),
	}
}

func recommendations(analyses, high []ColumnAnalysis) []string {
	var recs []string

	if len(high) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Immediate attention required: %d columns contain high-risk PII data", len(high)))

		for _, col := range high {
			seen := make(map[string]struct{})
			var types []string
			for _, m := range col.PIIMatches {
				if _, ok := seen[m.PatternType]; ok {
					continue
				}
				seen[m.PatternType] = struct{}{}
				types = append(types, m.PatternType)
			}
			sort.Strings(types)
			recs = append(recs, fmt.Sprintf(
				"Column '%s' contains %s - consider encryption or tokenization",
				col.ColumnName, strings.Join(types, ", ")))
		}
	}

	// Columns whose name suggests PII but whose sampled data produced
	// nothing are naming false-positive candidates.
	nameOnly := 0
	for _, a := range analyses {
		if len(a.SuspectedPIITypes) > 0 && len(a.PIIMatches) == 0 && a.RiskScore < nameOnlyThreshold {
			nameOnly++
		}
	}
	if nameOnly > 0 {
		recs = append(recs, fmt.Sprintf(
			"Review column names: %d columns have PII-suggestive names but no detected content", nameOnly))
	}

	return recs
}

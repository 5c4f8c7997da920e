// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detector implements the PII detection pipeline: pattern matching,
// per-type validation, confidence blending, and column risk aggregation.
package detector

// RawMatch is one pattern occurrence before validation. It carries the
// matched substring and its character offset within the scanned text.
type RawMatch struct {
	PatternType string
	Value       string
	Position    int
}

// Match is a validated PII finding. Value holds raw matched text and must be
// masked before any persistence.
type Match struct {
	PatternType string
	Value       string
	Confidence  float64
	Position    int
	Column      string
	RowIndex    int
}

// Value is one scalarized cell handed to the analyzer. Null cells are
// skipped during sampling.
type Value struct {
	Row  int
	Text string
	Null bool
}

// ColumnAnalysis aggregates detection results over one column's sampled
// values. A new scan produces a new ColumnAnalysis; instances are never
// mutated after creation.
type ColumnAnalysis struct {
	ColumnName        string
	DataType          string
	TotalRows         int
	NonNullRows       int
	UniqueValues      int
	SuspectedPIITypes []string
	PIIMatches        []Match
	RiskScore         float64
}

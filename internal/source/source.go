// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package source defines the contract with tabular data-source adapters and
// ships a CSV-backed adapter for file scanning.
package source

import (
	"context"
	"fmt"
	"strconv"

	"piiscan/internal/detector"
)

// TableRef identifies one table within a data source.
type TableRef struct {
	Schema string
	Table  string
}

func (r TableRef) String() string {
	if r.Schema == "" {
		return r.Table
	}
	return r.Schema + "." + r.Table
}

// ColumnInfo describes one column of a sampled table.
type ColumnInfo struct {
	Name         string
	DeclaredType string
}

// TableSample is the input contract from a data-source adapter: a bounded
// sample of scalarized rows. Adapters are responsible for coercing
// binary/complex SQL types to strings before the sample reaches the core.
type TableSample struct {
	Schema   string
	Table    string
	Columns  []ColumnInfo
	Rows     []map[string]any
	RowCount int
}

// Sampler is implemented by data-source adapters. Implementations must
// honor context cancellation on both operations.
type Sampler interface {
	// ListTables enumerates the tables available for scanning.
	ListTables(ctx context.Context) ([]TableRef, error)

	// SampleTable returns up to maxRows scalarized rows for one table.
	SampleTable(ctx context.Context, ref TableRef, maxRows int) (*TableSample, error)
}

// ColumnValues extracts one column's cells from a sample in row order,
// scalarizing each value for the detector.
func ColumnValues(sample *TableSample, columnName string) []detector.Value {
	values := make([]detector.Value, 0, len(sample.Rows))
	for i, row := range sample.Rows {
		raw, ok := row[columnName]
		if !ok || raw == nil {
			values = append(values, detector.Value{Row: i, Null: true})
			continue
		}
		text, null := Scalarize(raw)
		values = append(values, detector.Value{Row: i, Text: text, Null: null})
	}
	return values
}

// Scalarize coerces a sampled cell to its text form. Nil is null; empty
// strings are kept as non-null empty text.
func Scalarize(v any) (text string, null bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, false
	case bool:
		return strconv.FormatBool(t), false
	case int:
		return strconv.Itoa(t), false
	case int64:
		return strconv.FormatInt(t, 10), false
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), false
	default:
		return fmt.Sprintf("%v", t), false
	}
}

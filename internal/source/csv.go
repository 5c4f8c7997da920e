// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CSVSampler exposes a directory of CSV files as one schema of tables. The
// file base name is the table name; the first record is the header.
type CSVSampler struct {
	dir    string
	schema string
}

// NewCSVSampler creates a sampler over dir. Schema names the logical schema
// reported for every table; "csv" when empty.
func NewCSVSampler(dir, schema string) *CSVSampler {
	if schema == "" {
		schema = "csv"
	}
	return &CSVSampler{dir: dir, schema: schema}
}

// ListTables returns one TableRef per .csv file in the directory.
func (s *CSVSampler) ListTables(ctx context.Context) ([]TableRef, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing csv directory: %w", err)
	}

	var refs []TableRef
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		refs = append(refs, TableRef{
			Schema: s.schema,
			Table:  strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Table < refs[j].Table })
	return refs, nil
}

// SampleTable reads up to maxRows data rows from the table's CSV file.
func (s *CSVSampler) SampleTable(ctx context.Context, ref TableRef, maxRows int) (*TableSample, error) {
	path := filepath.Join(s.dir, ref.Table+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %w", ref, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", ref, err)
	}

	columns := make([]ColumnInfo, len(header))
	for i, name := range header {
		columns[i] = ColumnInfo{Name: strings.TrimSpace(name), DeclaredType: "text"}
	}

	var rows []map[string]any
	rowCount := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed record must fail the table, not truncate it.
			return nil, fmt.Errorf("reading table %s: %w", ref, err)
		}
		rowCount++
		if maxRows > 0 && len(rows) >= maxRows {
			continue // keep counting rows beyond the sample bound
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if i < len(record) && record[i] != "" {
				row[col.Name] = record[i]
			} else {
				row[col.Name] = nil
			}
		}
		rows = append(rows, row)
	}

	return &TableSample{
		Schema:   ref.Schema,
		Table:    ref.Table,
		Columns:  columns,
		Rows:     rows,
		RowCount: rowCount,
	}, nil
}

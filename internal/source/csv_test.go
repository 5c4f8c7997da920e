// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestCSVSampler_ListTables(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "customers.csv", "id,email\n1,a@b.com\n")
	writeCSV(t, dir, "orders.csv", "id,total\n1,10\n")
	writeCSV(t, dir, "notes.txt", "not a table")

	s := NewCSVSampler(dir, "demo")
	refs, err := s.ListTables(context.Background())
	require.NoError(t, err)

	require.Len(t, refs, 2)
	assert.Equal(t, "customers", refs[0].Table)
	assert.Equal(t, "orders", refs[1].Table)
	assert.Equal(t, "demo", refs[0].Schema)
}

func TestCSVSampler_SampleTable(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "people.csv", "name,ssn\nJohn Doe,123-45-6789\nJane Roe,\n")

	s := NewCSVSampler(dir, "")
	sample, err := s.SampleTable(context.Background(), TableRef{Schema: "csv", Table: "people"}, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, sample.RowCount)
	require.Len(t, sample.Columns, 2)
	assert.Equal(t, "name", sample.Columns[0].Name)

	// Empty cells come back as nulls.
	assert.Nil(t, sample.Rows[1]["ssn"])
	assert.Equal(t, "123-45-6789", sample.Rows[0]["ssn"])
}

func TestCSVSampler_MalformedRecordFailsTable(t *testing.T) {
	dir := t.TempDir()
	// Row 2 has a bare quote; the rows after it hold PII that must not be
	// silently dropped.
	writeCSV(t, dir, "bad.csv", "ssn\n111-22-3333\n12\"34\n444-55-6666\n")

	s := NewCSVSampler(dir, "")
	_, err := s.SampleTable(context.Background(), TableRef{Schema: "csv", Table: "bad"}, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv.bad")
}

func TestCSVSampler_MaxRowsBound(t *testing.T) {
	dir := t.TempDir()
	content := "v\n"
	for i := 0; i < 50; i++ {
		content += "x\n"
	}
	writeCSV(t, dir, "big.csv", content)

	s := NewCSVSampler(dir, "")
	sample, err := s.SampleTable(context.Background(), TableRef{Table: "big"}, 10)
	require.NoError(t, err)

	assert.Len(t, sample.Rows, 10)
	assert.Equal(t, 50, sample.RowCount)
}

func TestCSVSampler_MissingTable(t *testing.T) {
	s := NewCSVSampler(t.TempDir(), "")
	_, err := s.SampleTable(context.Background(), TableRef{Table: "absent"}, 10)
	assert.Error(t, err)
}

func TestColumnValues(t *testing.T) {
	sample := &TableSample{
		Columns: []ColumnInfo{{Name: "email"}},
		Rows: []map[string]any{
			{"email": "a@b.com"},
			{"email": nil},
			{"email": 42},
		},
	}

	values := ColumnValues(sample, "email")
	require.Len(t, values, 3)
	assert.Equal(t, "a@b.com", values[0].Text)
	assert.True(t, values[1].Null)
	assert.Equal(t, "42", values[2].Text)
}

func TestScalarize(t *testing.T) {
	text, null := Scalarize(nil)
	assert.True(t, null)
	assert.Empty(t, text)

	text, _ = Scalarize(3.14)
	assert.Equal(t, "3.14", text)

	text, _ = Scalarize(true)
	assert.Equal(t, "true", text)
}

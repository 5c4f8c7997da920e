// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package results persists PII detection outcomes. The store is append-only
// from the scanner's perspective and never receives unmasked values.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const queryTimeout = 5 * time.Second

// Record is one persisted PII finding. SampleValueMasked must only ever
// hold the masked display form.
type Record struct {
	ScanID            string    `json:"scan_id"`
	DatabaseName      string    `json:"database_name"`
	SchemaName        string    `json:"schema_name"`
	TableName         string    `json:"table_name"`
	ColumnName        string    `json:"column_name"`
	PIIType           string    `json:"pii_type"`
	ConfidenceScore   float64   `json:"confidence_score"`
	SampleValueMasked string    `json:"sample_value_masked"`
	ActionTaken       string    `json:"action_taken"`
	EncryptionKeyHint string    `json:"encryption_key_hint,omitempty"`
	DetectedAt        time.Time `json:"detected_at"`
	RegulatoryFlags   []string  `json:"regulatory_flags,omitempty"`
}

// Session tracks one complete scan run.
type Session struct {
	ScanID            string     `json:"scan_id"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	DatabasesScanned  []string   `json:"databases_scanned"`
	TablesScanned     int        `json:"tables_scanned"`
	PIIInstancesFound int        `json:"pii_instances_found"`
	Status            string     `json:"status"` // RUNNING, COMPLETED, FAILED
}

// Store is a SQLite-backed results database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the results database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	schema := []string{
		`CREATE TABLE IF NOT EXISTS scan_sessions (
			scan_id TEXT PRIMARY KEY,
			started_at TIMESTAMP,
			completed_at TIMESTAMP,
			databases_scanned TEXT,
			tables_scanned INTEGER,
			pii_instances_found INTEGER,
			status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS pii_detection_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id TEXT,
			database_name TEXT,
			schema_name TEXT,
			table_name TEXT,
			column_name TEXT,
			pii_type TEXT,
			confidence_score REAL,
			sample_value_masked TEXT,
			action_taken TEXT,
			encryption_key_hint TEXT,
			detected_at TIMESTAMP,
			regulatory_flags TEXT,
			FOREIGN KEY (scan_id) REFERENCES scan_sessions (scan_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_scan ON pii_detection_results(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_table ON pii_detection_results(database_name, table_name)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initializing results schema: %w", err)
		}
	}
	return nil
}

// BeginSession records a new running scan session.
func (s *Store) BeginSession(ctx context.Context, session Session) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	databases, err := json.Marshal(session.DatabasesScanned)
	if err != nil {
		return fmt.Errorf("encoding database list: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scan_sessions (scan_id, started_at, databases_scanned, tables_scanned, pii_instances_found, status)
		 VALUES (?, ?, ?, 0, 0, ?)`,
		session.ScanID, session.StartedAt, string(databases), "RUNNING")
	if err != nil {
		return fmt.Errorf("inserting scan session: %w", err)
	}
	return nil
}

// CompleteSession finalizes a session with its totals and status.
func (s *Store) CompleteSession(ctx context.Context, scanID string, tablesScanned, instancesFound int, status string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`UPDATE scan_sessions SET completed_at = ?, tables_scanned = ?, pii_instances_found = ?, status = ?
		 WHERE scan_id = ?`,
		time.Now().UTC(), tablesScanned, instancesFound, status, scanID)
	if err != nil {
		return fmt.Errorf("completing scan session: %w", err)
	}
	return nil
}

// InsertRecords appends detection records in one transaction.
func (s *Store) InsertRecords(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning results transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pii_detection_results
		 (scan_id, database_name, schema_name, table_name, column_name, pii_type,
		  confidence_score, sample_value_masked, action_taken, encryption_key_hint,
		  detected_at, regulatory_flags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		flags, err := json.Marshal(r.RegulatoryFlags)
		if err != nil {
			return fmt.Errorf("encoding regulatory flags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ScanID, r.DatabaseName, r.SchemaName, r.TableName, r.ColumnName,
			r.PIIType, r.ConfidenceScore, r.SampleValueMasked, r.ActionTaken,
			r.EncryptionKeyHint, r.DetectedAt, string(flags)); err != nil {
			return fmt.Errorf("inserting detection record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing results: %w", err)
	}
	return nil
}

// RecordsByScan returns every detection record for a scan session.
func (s *Store) RecordsByScan(ctx context.Context, scanID string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT scan_id, database_name, schema_name, table_name, column_name, pii_type,
		        confidence_score, sample_value_masked, action_taken, encryption_key_hint,
		        detected_at, regulatory_flags
		 FROM pii_detection_results WHERE scan_id = ? ORDER BY id`, scanID)
	if err != nil {
		return nil, fmt.Errorf("querying detection records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var hint sql.NullString
		var flags string
		if err := rows.Scan(&r.ScanID, &r.DatabaseName, &r.SchemaName, &r.TableName,
			&r.ColumnName, &r.PIIType, &r.ConfidenceScore, &r.SampleValueMasked,
			&r.ActionTaken, &hint, &r.DetectedAt, &flags); err != nil {
			return nil, fmt.Errorf("scanning detection record: %w", err)
		}
		r.EncryptionKeyHint = hint.String
		if flags != "" && flags != "null" {
			if err := json.Unmarshal([]byte(flags), &r.RegulatoryFlags); err != nil {
				return nil, fmt.Errorf("decoding regulatory flags: %w", err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SessionByID returns one scan session, or sql.ErrNoRows.
func (s *Store) SessionByID(ctx context.Context, scanID string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var session Session
	var completed sql.NullTime
	var databases string
	err := s.db.QueryRowContext(ctx,
		`SELECT scan_id, started_at, completed_at, databases_scanned, tables_scanned, pii_instances_found, status
		 FROM scan_sessions WHERE scan_id = ?`, scanID).
		Scan(&session.ScanID, &session.StartedAt, &completed, &databases,
			&session.TablesScanned, &session.PIIInstancesFound, &session.Status)
	if err != nil {
		return nil, err
	}

	if completed.Valid {
		t := completed.Time
		session.CompletedAt = &t
	}
	if databases != "" && databases != "null" {
		if err := json.Unmarshal([]byte(databases), &session.DatabasesScanned); err != nil {
			return nil, fmt.Errorf("decoding database list: %w", err)
		}
	}
	return &session, nil
}

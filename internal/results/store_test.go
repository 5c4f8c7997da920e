// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	err := store.BeginSession(ctx, Session{
		ScanID:           "scan-001",
		StartedAt:        started,
		DatabasesScanned: []string{"customers"},
	})
	require.NoError(t, err)

	session, err := store.SessionByID(ctx, "scan-001")
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", session.Status)
	assert.Nil(t, session.CompletedAt)
	assert.Equal(t, []string{"customers"}, session.DatabasesScanned)

	err = store.CompleteSession(ctx, "scan-001", 12, 57, "COMPLETED")
	require.NoError(t, err)

	session, err = store.SessionByID(ctx, "scan-001")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", session.Status)
	assert.Equal(t, 12, session.TablesScanned)
	assert.Equal(t, 57, session.PIIInstancesFound)
	require.NotNil(t, session.CompletedAt)
}

func TestSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SessionByID(context.Background(), "no-such-scan")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestInsertAndQueryRecords(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.BeginSession(ctx, Session{
		ScanID:    "scan-002",
		StartedAt: time.Now().UTC(),
	}))

	detected := time.Now().UTC().Truncate(time.Second)
	records := []Record{
		{
			ScanID:            "scan-002",
			DatabaseName:      "customers",
			SchemaName:        "public",
			TableName:         "accounts",
			ColumnName:        "ssn",
			PIIType:           "SSN",
			ConfidenceScore:   0.95,
			SampleValueMasked: "*******6789",
			ActionTaken:       "ENCRYPT",
			EncryptionKeyHint: "pii_ssn_accounts_202509",
			DetectedAt:        detected,
			RegulatoryFlags:   []string{"GDPR", "CCPA"},
		},
		{
			ScanID:            "scan-002",
			DatabaseName:      "customers",
			SchemaName:        "public",
			TableName:         "accounts",
			ColumnName:        "email",
			PIIType:           "EMAIL",
			ConfidenceScore:   0.8,
			SampleValueMasked: "j*******@email.com",
			ActionTaken:       "MASK",
			DetectedAt:        detected,
		},
	}
	require.NoError(t, store.InsertRecords(ctx, records))

	got, err := store.RecordsByScan(ctx, "scan-002")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "SSN", got[0].PIIType)
	assert.Equal(t, "*******6789", got[0].SampleValueMasked)
	assert.Equal(t, []string{"GDPR", "CCPA"}, got[0].RegulatoryFlags)
	assert.Equal(t, "pii_ssn_accounts_202509", got[0].EncryptionKeyHint)

	assert.Equal(t, "EMAIL", got[1].PIIType)
	assert.Empty(t, got[1].EncryptionKeyHint)
	assert.Empty(t, got[1].RegulatoryFlags)
}

func TestInsertRecordsEmpty(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.InsertRecords(context.Background(), nil))
}

func TestRecordsByScanIsolatesSessions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"scan-a", "scan-b"} {
		require.NoError(t, store.BeginSession(ctx, Session{ScanID: id, StartedAt: time.Now().UTC()}))
	}
	require.NoError(t, store.InsertRecords(ctx, []Record{
		{ScanID: "scan-a", PIIType: "SSN", DetectedAt: time.Now().UTC()},
		{ScanID: "scan-b", PIIType: "EMAIL", DetectedAt: time.Now().UTC()},
	}))

	got, err := store.RecordsByScan(ctx, "scan-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SSN", got[0].PIIType)
}

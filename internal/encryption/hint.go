// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"strings"
	"time"
)

// maxTableComponent bounds the table-name component of a key hint.
const maxTableComponent = 10

// KeyHint derives the human-readable label used to derive (not store) the
// encryption key for a PII type, table, and month. The trailing year-month
// component gives natural monthly key rotation without persisted rotation
// state.
func KeyHint(piiType, tableName string, now time.Time) string {
	if tableName == "" {
		tableName = "unknown"
	}
	if len(tableName) > maxTableComponent {
		tableName = tableName[:maxTableComponent]
	}

	parts := []string{
		"pii",
		strings.ToLower(piiType),
		tableName,
		now.Format("200601"),
	}
	return strings.Join(parts, "_")
}

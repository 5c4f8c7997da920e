// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptor(t *testing.T) *Encryptor {
	t.Helper()
	e, err := NewEncryptor(filepath.Join(t.TempDir(), "master.key"))
	require.NoError(t, err)
	return e
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := newTestEncryptor(t)

	meta, err := e.Encrypt("123-45-6789", "pii_ssn_customers_202509")
	require.NoError(t, err)

	assert.Equal(t, "AES-256-GCM", meta.Algorithm)
	assert.Equal(t, "PBKDF2-SHA256", meta.KeyDerivation)
	assert.NotContains(t, meta.EncryptedData, "6789")

	plain, err := e.Decrypt(meta)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", plain)
}

func TestEncrypt_FreshSaltPerValue(t *testing.T) {
	e := newTestEncryptor(t)

	m1, err := e.Encrypt("same value", "hint")
	require.NoError(t, err)
	m2, err := e.Encrypt("same value", "hint")
	require.NoError(t, err)

	assert.NotEqual(t, m1.Salt, m2.Salt)
	assert.NotEqual(t, m1.EncryptedData, m2.EncryptedData)
}

func TestDecrypt_WrongHintFails(t *testing.T) {
	e := newTestEncryptor(t)

	meta, err := e.Encrypt("secret", "pii_ssn_a_202509")
	require.NoError(t, err)

	meta.EncryptionHint = "pii_ssn_b_202509"
	_, err = e.Decrypt(meta)
	assert.Error(t, err)
}

func TestNewEncryptor_ReusesExistingKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.key")

	e1, err := NewEncryptor(path)
	require.NoError(t, err)
	meta, err := e1.Encrypt("value", "hint")
	require.NoError(t, err)

	// A second encryptor over the same key file can decrypt.
	e2, err := NewEncryptor(path)
	require.NoError(t, err)
	plain, err := e2.Decrypt(meta)
	require.NoError(t, err)
	assert.Equal(t, "value", plain)
}

func TestKeyHint(t *testing.T) {
	at := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "pii_ssn_customers_202509", KeyHint("SSN", "customers", at))
	assert.Equal(t, "pii_email_unknown_202509", KeyHint("EMAIL", "", at))

	// Table component is truncated for long names.
	assert.Equal(t, "pii_ssn_verylongta_202509", KeyHint("SSN", "verylongtablename", at))
}

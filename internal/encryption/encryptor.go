// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	defaultIterations = 100000
	keyLength         = 32
	saltLength        = 16
)

// Metadata describes one encrypted field outcome. It is immutable once
// written; key rotation supersedes rather than mutates records.
type Metadata struct {
	EncryptedData  string    `json:"encrypted_data"`
	Salt           string    `json:"salt"`
	EncryptionHint string    `json:"encryption_hint"`
	EncryptedAt    time.Time `json:"encrypted_at"`
	Algorithm      string    `json:"algorithm"`
	KeyDerivation  string    `json:"key_derivation"`
}

// Encryptor encrypts PII values with keys derived from a master key file
// and a per-record hint. Keys are never stored; they are re-derived from
// the hint and salt on decryption.
type Encryptor struct {
	masterKeyPath string
	iterations    int
}

// NewEncryptor opens (or creates) the master key file at path.
func NewEncryptor(path string) (*Encryptor, error) {
	e := &Encryptor{masterKeyPath: path, iterations: defaultIterations}
	if err := e.ensureMasterKey(); err != nil {
		return nil, err
	}
	return e, nil
}

// ensureMasterKey creates a random master key with restrictive permissions
// when none exists yet.
func (e *Encryptor) ensureMasterKey() error {
	if _, err := os.Stat(e.masterKeyPath); err == nil {
		return nil
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("generating master key: %w", err)
	}

	if dir := filepath.Dir(e.masterKeyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating master key directory: %w", err)
		}
	}
	if err := os.WriteFile(e.masterKeyPath, key, 0o600); err != nil {
		return fmt.Errorf("writing master key: %w", err)
	}
	return nil
}

func (e *Encryptor) masterKey() ([]byte, error) {
	key, err := os.ReadFile(e.masterKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading master key: %w", err)
	}
	return key, nil
}

// deriveKey combines the master key with the hint and stretches the result
// with PBKDF2-SHA256.
func (e *Encryptor) deriveKey(hint string, salt []byte) ([]byte, error) {
	master, err := e.masterKey()
	if err != nil {
		return nil, err
	}
	combined := append(append([]byte{}, master...), []byte(hint)...)
	return pbkdf2.Key(combined, salt, e.iterations, keyLength, sha256.New), nil
}

// Encrypt seals a PII value under a key derived from hint and a fresh salt.
func (e *Encryptor) Encrypt(value, hint string) (Metadata, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return Metadata{}, fmt.Errorf("generating salt: %w", err)
	}

	key, err := e.deriveKey(hint, salt)
	if err != nil {
		return Metadata{}, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return Metadata{}, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return Metadata{}, fmt.Errorf("creating gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return Metadata{}, fmt.Errorf("generating nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(value), nil)

	return Metadata{
		EncryptedData:  base64.URLEncoding.EncodeToString(sealed),
		Salt:           base64.URLEncoding.EncodeToString(salt),
		EncryptionHint: hint,
		EncryptedAt:    time.Now().UTC(),
		Algorithm:      "AES-256-GCM",
		KeyDerivation:  "PBKDF2-SHA256",
	}, nil
}

// Decrypt recovers the original value from stored metadata.
func (e *Encryptor) Decrypt(meta Metadata) (string, error) {
	sealed, err := base64.URLEncoding.DecodeString(meta.EncryptedData)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}
	salt, err := base64.URLEncoding.DecodeString(meta.Salt)
	if err != nil {
		return "", fmt.Errorf("decoding salt: %w", err)
	}

	key, err := e.deriveKey(meta.EncryptionHint, salt)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating gcm: %w", err)
	}

	if len(sealed) < gcm.NonceSize() {
		return "", fmt.Errorf("ciphertext shorter than nonce")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting value: %w", err)
	}
	return string(plain), nil
}

// RotateKeys re-encrypts existing records under a new hint.
// TODO: wire to the results store once encrypted values are persisted there.
func (e *Encryptor) RotateKeys(oldHintPattern, newHint string) (int, error) {
	return 0, fmt.Errorf("key rotation not implemented")
}

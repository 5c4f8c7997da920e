// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package decision

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleEngine_HighSensitivityEncrypts(t *testing.T) {
	r := NewRuleEngine()

	for _, typ := range []string{"SSN", "CREDIT_CARD", "MEDICAL_RECORD_NUMBER", "HEALTH_DATA", "BIOMETRIC"} {
		d := r.Decide(typ, 0.9, Context{Table: "customers"})
		assert.Equal(t, ActionEncrypt, d.Action, typ)
		assert.Equal(t, 0.8, d.Confidence, typ)
		assert.True(t, strings.HasPrefix(d.EncryptionKeyHint, "pii_"+strings.ToLower(typ)+"_"), "hint %q", d.EncryptionKeyHint)
	}
}

func TestRuleEngine_MediumSensitivityMasks(t *testing.T) {
	r := NewRuleEngine()

	for _, typ := range []string{"EMAIL", "PHONE", "FULL_NAME", "ADDRESS", "DATE_OF_BIRTH"} {
		d := r.Decide(typ, 0.9, Context{})
		assert.Equal(t, ActionMask, d.Action, typ)
		assert.Equal(t, 0.7, d.Confidence, typ)
		assert.Empty(t, d.EncryptionKeyHint, typ)
	}
}

func TestRuleEngine_DefaultLogs(t *testing.T) {
	r := NewRuleEngine()

	d := r.Decide("ZIP_CODE", 0.9, Context{})
	assert.Equal(t, ActionLog, d.Action)
	assert.Equal(t, 0.6, d.Confidence)
}

func TestRuleEngine_KeyHintRotation(t *testing.T) {
	r := NewRuleEngine()
	r.now = func() time.Time { return time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC) }

	d := r.Decide("SSN", 0.9, Context{})
	assert.Equal(t, "pii_ssn_202508", d.EncryptionKeyHint)
}

// stubClassifier implements Classifier for tests.
type stubClassifier struct {
	decision Decision
	err      error
	delay    time.Duration
}

func (s *stubClassifier) Decide(ctx context.Context, piiType string, confidence float64, dctx Context) (Decision, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Decision{}, ctx.Err()
		}
	}
	return s.decision, s.err
}

func TestMaker_NoAdvisoryUsesRules(t *testing.T) {
	m := NewMaker(nil, time.Second, nil)

	d := m.Decide(context.Background(), "SSN", 0.9, Context{})
	assert.Equal(t, ActionEncrypt, d.Action)
	assert.Equal(t, 0.8, d.Confidence)
}

func TestMaker_AdvisoryUsedWhenHealthy(t *testing.T) {
	adv := &stubClassifier{decision: Decision{Action: ActionIgnore, Reasoning: "test data", Confidence: 0.95}}
	m := NewMaker(adv, time.Second, nil)

	d := m.Decide(context.Background(), "SSN", 0.9, Context{})
	assert.Equal(t, ActionIgnore, d.Action)
	assert.Equal(t, 0.95, d.Confidence)
}

func TestMaker_FallbackOnError(t *testing.T) {
	adv := &stubClassifier{err: errors.New("upstream unavailable")}
	m := NewMaker(adv, time.Second, nil)

	d := m.Decide(context.Background(), "SSN", 0.9, Context{})

	// Must match the rule-based path exactly.
	want := NewRuleEngine().Decide("SSN", 0.9, Context{})
	assert.Equal(t, want.Action, d.Action)
	assert.Equal(t, want.Confidence, d.Confidence)
}

func TestMaker_FallbackOnTimeout(t *testing.T) {
	adv := &stubClassifier{delay: 500 * time.Millisecond, decision: Decision{Action: ActionIgnore}}
	m := NewMaker(adv, 10*time.Millisecond, nil)

	start := time.Now()
	d := m.Decide(context.Background(), "EMAIL", 0.8, Context{})
	require.Less(t, time.Since(start), 400*time.Millisecond, "decision must not wait out a slow classifier")
	assert.Equal(t, ActionMask, d.Action)
}

func TestMaker_FallbackOnInvalidAction(t *testing.T) {
	adv := &stubClassifier{decision: Decision{Action: "SHRED"}}
	m := NewMaker(adv, time.Second, nil)

	d := m.Decide(context.Background(), "PHONE", 0.8, Context{})
	assert.Equal(t, ActionMask, d.Action)
}

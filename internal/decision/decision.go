// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package decision chooses the disposition for detected PII values:
// mask, log, encrypt, or ignore.
package decision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"piiscan/internal/observability"
)

// Action is the disposition chosen for one detected value.
type Action string

const (
	ActionMask    Action = "MASK"
	ActionLog     Action = "LOG"
	ActionEncrypt Action = "ENCRYPT"
	ActionIgnore  Action = "IGNORE"
)

// Valid reports whether a is one of the four defined actions.
func (a Action) Valid() bool {
	switch a {
	case ActionMask, ActionLog, ActionEncrypt, ActionIgnore:
		return true
	}
	return false
}

// Decision is the chosen disposition for one detected value. It never
// carries raw PII.
type Decision struct {
	Action            Action  `json:"action"`
	Reasoning         string  `json:"reasoning"`
	Confidence        float64 `json:"confidence"`
	EncryptionKeyHint string  `json:"encryption_key_hint,omitempty"`
}

// Context carries provenance for a detection, used for reasoning and key
// hint derivation. It must never include the matched value itself.
type Context struct {
	Database string
	Schema   string
	Table    string
	Column   string
}

// highSensitivity types are always encrypted.
var highSensitivity = map[string]bool{
	"SSN":                   true,
	"CREDIT_CARD":           true,
	"MEDICAL_RECORD_NUMBER": true,
	"HEALTH_PLAN_NUMBER":    true,
	"HEALTH_DATA":           true,
	"BIOMETRIC":             true,
	"GENETIC_DATA":          true,
	"BANK_ACCOUNT":          true,
}

// mediumSensitivity types are masked for display.
var mediumSensitivity = map[string]bool{
	"EMAIL":         true,
	"PHONE":         true,
	"FULL_NAME":     true,
	"ADDRESS":       true,
	"DATE_OF_BIRTH": true,
}

// RuleEngine is the deterministic default policy. It is also the fallback
// whenever the advisory classifier fails.
type RuleEngine struct {
	now func() time.Time
}

// NewRuleEngine creates the rule-based policy engine.
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{now: time.Now}
}

// Decide applies the fixed sensitivity tiers: high-sensitivity types are
// encrypted, medium-sensitivity types are masked, everything else is logged.
func (r *RuleEngine) Decide(piiType string, confidence float64, dctx Context) Decision {
	switch {
	case highSensitivity[piiType]:
		return Decision{
			Action:            ActionEncrypt,
			Reasoning:         fmt.Sprintf("%s is high-sensitivity PII requiring encryption", piiType),
			Confidence:        0.8,
			EncryptionKeyHint: fmt.Sprintf("pii_%s_%s", strings.ToLower(piiType), r.now().Format("200601")),
		}
	case mediumSensitivity[piiType]:
		return Decision{
			Action:     ActionMask,
			Reasoning:  fmt.Sprintf("%s should be masked for privacy protection", piiType),
			Confidence: 0.7,
		}
	default:
		return Decision{
			Action:     ActionLog,
			Reasoning:  fmt.Sprintf("%s is low-risk, logging detection is sufficient", piiType),
			Confidence: 0.6,
		}
	}
}

// Classifier is the optional external advisory classifier. Implementations
// must honor ctx cancellation; any error they return degrades the caller to
// rule-based behavior.
type Classifier interface {
	Decide(ctx context.Context, piiType string, confidence float64, dctx Context) (Decision, error)
}

// Maker resolves decisions, consulting the advisory classifier first when
// one is configured and falling back to the rule engine on any failure. A
// slow or unavailable classifier never blocks or fails a scan.
type Maker struct {
	rules    *RuleEngine
	advisory Classifier
	timeout  time.Duration
	observer *observability.Observer
}

// NewMaker wires a decision maker. advisory may be nil, in which case the
// rule engine is used directly.
func NewMaker(advisory Classifier, timeout time.Duration, observer *observability.Observer) *Maker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Maker{
		rules:    NewRuleEngine(),
		advisory: advisory,
		timeout:  timeout,
		observer: observer,
	}
}

// Decide returns the disposition for one detected value.
func (m *Maker) Decide(ctx context.Context, piiType string, confidence float64, dctx Context) Decision {
	if m.advisory == nil {
		return m.rules.Decide(piiType, confidence, dctx)
	}

	advCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	d, err := m.advisory.Decide(advCtx, piiType, confidence, dctx)
	if err != nil {
		m.observer.Warn("decision", "advisory_classifier",
			fmt.Sprintf("advisory classifier failed for %s, using rule-based fallback: %v", piiType, err))
		return m.rules.Decide(piiType, confidence, dctx)
	}
	if !d.Action.Valid() {
		m.observer.Warn("decision", "advisory_classifier",
			fmt.Sprintf("advisory classifier returned invalid action %q for %s, using rule-based fallback", d.Action, piiType))
		return m.rules.Decide(piiType, confidence, dctx)
	}
	return d
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validators provides per-type structural validation that converts a
// raw pattern match into a calibrated confidence score in [0,1].
package validators

import (
	"piiscan/internal/validators/creditcard"
	"piiscan/internal/validators/email"
	"piiscan/internal/validators/ssn"
)

// BaselineConfidence is assigned to matches of types without a bespoke
// validator.
const BaselineConfidence = 0.7

// ValueValidator scores how likely a matched substring truly is its assigned
// PII type. Implementations must be pure functions of the input.
type ValueValidator interface {
	Confidence(value string) float64
}

// Set dispatches validation to the registered per-type validator, falling
// back to BaselineConfidence for types without one.
type Set struct {
	byType map[string]ValueValidator
}

// NewSet builds the default validator set (SSN, CREDIT_CARD, EMAIL).
func NewSet() *Set {
	return &Set{
		byType: map[string]ValueValidator{
			"SSN":         ssn.NewValidator(),
			"CREDIT_CARD": creditcard.NewValidator(),
			"EMAIL":       email.NewValidator(),
		},
	}
}

// Validate returns the calibrated confidence for a matched value of the
// given PII type.
func (s *Set) Validate(piiType, value string) float64 {
	if v, ok := s.byType[piiType]; ok {
		return v.Confidence(value)
	}
	return BaselineConfidence
}

// Has reports whether a bespoke validator exists for the type.
func (s *Set) Has(piiType string) bool {
	_, ok := s.byType[piiType]
	return ok
}

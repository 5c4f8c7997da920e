// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ssn

import "strings"

// Validator scores candidate Social Security Numbers. It applies the digit
// count and zero-group rules to matched substrings; it performs no I/O.
type Validator struct{}

// NewValidator creates a new SSN validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Confidence returns the calibrated confidence for a candidate SSN:
// 0.3 when the value does not reduce to exactly 9 digits, 0.2 for the
// all-zero SSN or a zero area/group section, 0.9 otherwise.
//
// Only the literal all-zero forms are rejected here. Other known-invalid
// ranges (666 area, area > 899) are intentionally not checked; downstream
// scoring depends on this exact boundary.
func (v *Validator) Confidence(value string) float64 {
	digits := stripNonDigits(value)

	if len(digits) != 9 {
		return 0.3
	}

	if digits == "000000000" || digits[:3] == "000" || digits[3:5] == "00" {
		return 0.2
	}

	return 0.9
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

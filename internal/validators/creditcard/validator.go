// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package creditcard

import "strings"

// Validator scores candidate credit card numbers using the Luhn checksum.
type Validator struct{}

// NewValidator creates a new credit card validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Confidence returns 0.3 when the value does not reduce to 13-19 digits,
// 0.95 when the Luhn checksum passes, and 0.4 when it fails.
func (v *Validator) Confidence(value string) float64 {
	digits := stripNonDigits(value)

	if len(digits) < 13 || len(digits) > 19 {
		return 0.3
	}

	if luhnValid(digits) {
		return 0.95
	}
	return 0.4
}

// luhnValid implements the Luhn checksum: double every second digit from the
// rightmost, sum the digits of the products plus the remaining digits, and
// check the total modulo 10.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
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

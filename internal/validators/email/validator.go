// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package email

import "strings"

// Validator scores candidate email addresses by structural checks.
type Validator struct{}

// NewValidator creates a new email validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Confidence escalates through structural checks: 0.3 when the value is
// missing an @ or a dot or has more than one @, 0.4 when the local or
// domain part is empty, 0.5 when the domain has no dot, and 0.8 when all
// checks pass.
func (v *Validator) Confidence(value string) float64 {
	if !strings.Contains(value, "@") || !strings.Contains(value, ".") {
		return 0.3
	}

	parts := strings.Split(value, "@")
	if len(parts) != 2 {
		return 0.3
	}

	local, domain := parts[0], parts[1]
	if local == "" || domain == "" {
		return 0.4
	}

	if !strings.Contains(domain, ".") {
		return 0.5
	}

	return 0.8
}

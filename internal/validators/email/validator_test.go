// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package email

import "testing"

func TestConfidence(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"well formed", "john.doe@email.com", 0.8},
		{"no at sign", "john.doe.email.com", 0.3},
		{"no dot", "john@emailcom", 0.3},
		{"two at signs", "john@doe@email.com", 0.3},
		{"empty local", "@email.com", 0.4},
		{"empty domain", "john.doe@", 0.4},
		{"no dot in domain", "john.doe@emailcom", 0.5},
		{"empty", "", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Confidence(tt.value); got != tt.want {
				t.Errorf("Confidence(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

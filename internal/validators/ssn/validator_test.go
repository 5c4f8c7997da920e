// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ssn

import "testing"

func TestConfidence(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"valid dashed", "123-45-6789", 0.9},
		{"valid spaced", "123 45 6789", 0.9},
		{"valid bare", "123456789", 0.9},
		{"all zeros", "000-00-0000", 0.2},
		{"zero area", "000-12-3456", 0.2},
		{"zero group", "123-00-4567", 0.2},
		{"wrong digit count", "12-345-6789", 0.9}, // still 9 digits after stripping
		{"too short", "123-45-678", 0.3},
		{"too long", "123-45-67890", 0.3},
		{"non numeric", "abc-de-fghi", 0.3},
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

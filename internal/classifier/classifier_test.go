// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"testing"
)

func TestSuspectedTypes(t *testing.T) {
	c := New()

	tests := []struct {
		column string
		want   []string
	}{
		{"ssn_number", []string{"SSN"}},
		{"customer_email", []string{"EMAIL"}},
		{"full_name", []string{"FULL_NAME"}},
		{"date_of_birth", []string{"DATE_OF_BIRTH"}},
		{"cc_number", []string{"CREDIT_CARD"}},
		{"order_total", nil},
		{"quantity", nil},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got := c.SuspectedTypes(tt.column)
			if len(got) != len(tt.want) {
				t.Fatalf("SuspectedTypes(%q) = %v, want %v", tt.column, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SuspectedTypes(%q) = %v, want %v", tt.column, got, tt.want)
				}
			}
		})
	}
}

func TestSuspectedTypes_CaseInsensitive(t *testing.T) {
	c := New()
	got := c.SuspectedTypes("Customer_SSN")
	if len(got) != 1 || got[0] != "SSN" {
		t.Errorf("expected [SSN], got %v", got)
	}
}

func TestSuspectedTypes_MultipleIndicators(t *testing.T) {
	c := New()
	got := c.SuspectedTypes("patient_id_email_phone")
	want := map[string]bool{"EMAIL": true, "PHONE": true, "MEDICAL_RECORD_NUMBER": true}
	for _, typ := range got {
		if !want[typ] {
			t.Errorf("unexpected suspected type %s in %v", typ, got)
		}
	}
	if len(got) != len(want) {
		t.Errorf("expected %d types, got %v", len(want), got)
	}
}

func TestSuspectedTypes_Deterministic(t *testing.T) {
	c := New()
	first := c.SuspectedTypes("emergency_contact_phone_email")
	for i := 0; i < 10; i++ {
		again := c.SuspectedTypes("emergency_contact_phone_email")
		if len(again) != len(first) {
			t.Fatalf("run %d: %v != %v", i, again, first)
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d: %v != %v", i, again, first)
			}
		}
	}
}

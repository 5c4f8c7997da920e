// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier maps column names to suspected PII types using
// indicator substrings. It never inspects data values, so classification
// cost is independent of row count.
package classifier

import (
	"sort"
	"strings"
)

// indicator associates a column-name substring with the PII types it
// suggests.
type indicator struct {
	substring string
	types     []string
}

// indicators is the fixed lookup table. A column name containing the
// substring (case-insensitively) is suspected of holding every listed type.
var indicators = []indicator{
	// Government identifiers
	{"ssn", []string{"SSN"}},
	{"social_security", []string{"SSN"}},
	{"social_sec_num", []string{"SSN"}},
	{"tax_id", []string{"SSN"}},
	{"taxpayer_id", []string{"SSN"}},
	{"passport", []string{"US_PASSPORT"}},
	{"driver_license", []string{"DRIVERS_LICENSE"}},
	{"drivers_license", []string{"DRIVERS_LICENSE"}},
	{"dl_number", []string{"DRIVERS_LICENSE"}},

	// Contact details
	{"email", []string{"EMAIL"}},
	{"e_mail", []string{"EMAIL"}},
	{"phone", []string{"PHONE"}},
	{"telephone", []string{"PHONE"}},
	{"mobile", []string{"PHONE"}},
	{"cell", []string{"PHONE"}},
	{"tel_num", []string{"PHONE"}},
	{"fax", []string{"FAX"}},

	// Names
	{"first_name", []string{"FULL_NAME"}},
	{"last_name", []string{"FULL_NAME"}},
	{"full_name", []string{"FULL_NAME"}},
	{"given_name", []string{"FULL_NAME"}},
	{"family_name", []string{"FULL_NAME"}},
	{"middle_name", []string{"FULL_NAME"}},
	{"maiden_name", []string{"FULL_NAME"}},
	{"surname", []string{"FULL_NAME"}},
	{"nickname", []string{"FULL_NAME"}},
	{"name", []string{"FULL_NAME"}},

	// Address
	{"address", []string{"ADDRESS"}},
	{"street", []string{"ADDRESS"}},
	{"addr", []string{"ADDRESS"}},
	{"zip", []string{"ZIP_CODE"}},
	{"zipcode", []string{"ZIP_CODE"}},
	{"postal_code", []string{"ZIP_CODE"}},

	// Financial
	{"credit_card", []string{"CREDIT_CARD"}},
	{"creditcard", []string{"CREDIT_CARD"}},
	{"cc_number", []string{"CREDIT_CARD"}},
	{"card_number", []string{"CREDIT_CARD"}},
	{"bank_account", []string{"BANK_ACCOUNT"}},
	{"routing_number", []string{"BANK_ACCOUNT"}},
	{"aba_number", []string{"BANK_ACCOUNT"}},
	{"iban", []string{"BANK_ACCOUNT"}},
	{"account", []string{"ACCOUNT_NUMBER"}},
	{"acct_num", []string{"ACCOUNT_NUMBER"}},

	// Dates
	{"birth", []string{"DATE_OF_BIRTH"}},
	{"dob", []string{"DATE_OF_BIRTH"}},
	{"birthdate", []string{"DATE_OF_BIRTH"}},

	// Healthcare
	{"medical_record", []string{"MEDICAL_RECORD_NUMBER"}},
	{"mrn", []string{"MEDICAL_RECORD_NUMBER"}},
	{"patient_id", []string{"MEDICAL_RECORD_NUMBER"}},
	{"health_plan", []string{"HEALTH_PLAN_NUMBER"}},
	{"member_id", []string{"HEALTH_PLAN_NUMBER"}},
	{"policy_num", []string{"HEALTH_PLAN_NUMBER"}},
	{"beneficiary", []string{"HEALTH_PLAN_NUMBER"}},
	{"diagnosis", []string{"HEALTH_DATA"}},
	{"medical", []string{"HEALTH_DATA"}},
	{"medication", []string{"HEALTH_DATA"}},
	{"prescription", []string{"HEALTH_DATA"}},
	{"health", []string{"HEALTH_DATA"}},

	// GDPR special categories
	{"race", []string{"RACIAL_ETHNIC_ORIGIN"}},
	{"ethnicity", []string{"RACIAL_ETHNIC_ORIGIN"}},
	{"ethnic", []string{"RACIAL_ETHNIC_ORIGIN"}},
	{"religion", []string{"RELIGIOUS_BELIEF"}},
	{"religious", []string{"RELIGIOUS_BELIEF"}},
	{"faith", []string{"RELIGIOUS_BELIEF"}},
	{"political", []string{"POLITICAL_OPINION"}},
	{"union", []string{"TRADE_UNION"}},
	{"genetic", []string{"GENETIC_DATA"}},
	{"dna", []string{"GENETIC_DATA"}},
	{"sexual_orientation", []string{"SEXUAL_ORIENTATION"}},
	{"sexuality", []string{"SEXUAL_ORIENTATION"}},

	// Location and tracking
	{"latitude", []string{"GEOLOCATION"}},
	{"longitude", []string{"GEOLOCATION"}},
	{"coordinates", []string{"GEOLOCATION"}},
	{"geolocation", []string{"GEOLOCATION"}},
	{"gps", []string{"GEOLOCATION"}},
	{"ip_address", []string{"IP_ADDRESS"}},
	{"ip_addr", []string{"IP_ADDRESS"}},

	// Immigration
	{"citizenship", []string{"IMMIGRATION_STATUS"}},
	{"immigration", []string{"IMMIGRATION_STATUS"}},
	{"visa_number", []string{"IMMIGRATION_STATUS"}},
	{"green_card", []string{"IMMIGRATION_STATUS"}},

	// Biometric and devices
	{"biometric", []string{"BIOMETRIC"}},
	{"fingerprint", []string{"BIOMETRIC"}},
	{"voiceprint", []string{"BIOMETRIC"}},
	{"retina", []string{"BIOMETRIC"}},
	{"iris", []string{"BIOMETRIC"}},
	{"vin", []string{"VEHICLE_IDENTIFIER"}},
	{"license_plate", []string{"VEHICLE_IDENTIFIER"}},
	{"plate_number", []string{"VEHICLE_IDENTIFIER"}},
	{"vehicle", []string{"VEHICLE_IDENTIFIER"}},
	{"device_id", []string{"DEVICE_IDENTIFIER"}},
	{"device_serial", []string{"DEVICE_IDENTIFIER"}},
	{"serial", []string{"DEVICE_IDENTIFIER"}},

	// Web
	{"url", []string{"URL"}},
	{"website", []string{"URL"}},
	{"web_address", []string{"URL"}},
	{"certificate", []string{"CERTIFICATE_LICENSE"}},
	{"cert_num", []string{"CERTIFICATE_LICENSE"}},
	{"license_num", []string{"CERTIFICATE_LICENSE"}},
}

// Classifier maps column names to suspected PII types.
type Classifier struct{}

// New creates a column name classifier.
func New() *Classifier {
	return &Classifier{}
}

// SuspectedTypes returns the sorted, deduplicated PII types suggested by a
// column name.
func (c *Classifier) SuspectedTypes(columnName string) []string {
	lower := strings.ToLower(columnName)

	seen := make(map[string]bool)
	for _, ind := range indicators {
		if !strings.Contains(lower, ind.substring) {
			continue
		}
		for _, t := range ind.types {
			seen[t] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

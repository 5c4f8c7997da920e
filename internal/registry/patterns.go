// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

// BuiltinPatterns returns the default pattern set covering HIPAA PHI
// identifiers, GDPR special categories, and CCPA sensitive categories.
// Every PII type referenced downstream has exactly one entry here.
func BuiltinPatterns() []PatternDefinition {
	return []PatternDefinition{
		{
			Type:        "SSN",
			Pattern:     `\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`,
			Description: "Social Security Number (HIPAA PHI #7)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "CREDIT_CARD",
			Pattern:     `\b(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14}|3[47][0-9]{13}|3[0-9]{13}|6(?:011|5[0-9]{2})[0-9]{12})\b`,
			Description: "Credit Card Number (CCPA Financial Account)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{CCPA, GDPR},
		},
		{
			Type:        "EMAIL",
			Pattern:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			Description: "Email Address (HIPAA PHI #6)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "PHONE",
			Pattern:     `\b(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`,
			Description: "Phone Number (HIPAA PHI #4)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "FAX",
			Pattern:     `\b(?:fax|facsimile)[\s:]*(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`,
			Description: "Fax Number (HIPAA PHI #5)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA},
		},
		{
			Type:        "US_PASSPORT",
			Pattern:     `\b[A-Z]{1,2}[0-9]{6,9}\b`,
			Description: "US Passport Number (CCPA)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{CCPA, GDPR},
		},
		{
			Type:        "DRIVERS_LICENSE",
			Pattern:     `\b[A-Z]{1,2}[0-9]{4,8}\b`,
			Description: "Driver License Number (CCPA)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{CCPA, GDPR},
		},
		{
			Type:        "DATE_OF_BIRTH",
			Pattern:     `\b(?:0[1-9]|1[0-2])[\/\-.](?:0[1-9]|[12]\d|3[01])[\/\-.](?:19|20)\d{2}\b`,
			Description: "Date of Birth (HIPAA PHI #3)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "MEDICAL_RECORD_NUMBER",
			Pattern:     `\b(?:MRN|MR|MEDICAL[\s_]?RECORD)[\s:]*[A-Z0-9]{6,12}\b`,
			Description: "Medical Record Number (HIPAA PHI #8)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{HIPAA},
		},
		{
			Type:        "HEALTH_PLAN_NUMBER",
			Pattern:     `\b(?:PLAN|POLICY|MEMBER)[\s_#:]*[A-Z0-9]{6,15}\b`,
			Description: "Health Plan Beneficiary Number (HIPAA PHI #9)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{HIPAA},
		},
		{
			Type:        "ACCOUNT_NUMBER",
			Pattern:     `\b(?:ACCOUNT|ACCT)[\s_#:]*[A-Z0-9]{6,20}\b`,
			Description: "Account Number (HIPAA PHI #10)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA, CCPA},
		},
		{
			Type:        "CERTIFICATE_LICENSE",
			Pattern:     `\b(?:CERT|LICENSE|LIC)[\s_#:]*[A-Z0-9]{5,15}\b`,
			Description: "Certificate/License Number (HIPAA PHI #11)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA, CCPA},
		},
		{
			Type:        "VEHICLE_IDENTIFIER",
			Pattern:     `\b[A-Z0-9]{17}\b|(?:PLATE|LICENSE)[\s_#:]*[A-Z0-9]{2,8}\b`,
			Description: "Vehicle/License Plate Number (HIPAA PHI #12)",
			Severity:    SeverityMedium,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "DEVICE_IDENTIFIER",
			Pattern:     `\b(?:DEVICE|SERIAL)[\s_#:]*[A-Z0-9]{6,20}\b`,
			Description: "Device Identifier/Serial Number (HIPAA PHI #13)",
			Severity:    SeverityMedium,
			Regulations: []Regulation{HIPAA, GDPR},
		},
		{
			Type:        "URL",
			Pattern:     `\bhttps?://[A-Za-z0-9.-]+(?:/[A-Za-z0-9._~:/?#[\]@!$&'()*+,;=-]*)?`,
			Description: "Web URL (HIPAA PHI #14)",
			Severity:    SeverityMedium,
			Regulations: []Regulation{HIPAA, GDPR},
		},
		{
			Type:        "IP_ADDRESS",
			Pattern:     `\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`,
			Description: "IP Address (HIPAA PHI #15)",
			Severity:    SeverityMedium,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "BIOMETRIC",
			Pattern:     `\b(?:FINGERPRINT|VOICEPRINT|RETINA|IRIS|BIOMETRIC)[\s_:]*[A-Z0-9]{10,}\b`,
			Description: "Biometric Identifier (HIPAA PHI #16)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "ADDRESS",
			Pattern:     `\b\d+\s+[A-Za-z0-9\s,.-]+(?:Street|St|Avenue|Ave|Road|Rd|Lane|Ln|Drive|Dr|Boulevard|Blvd|Court|Ct|Circle|Cir)\b`,
			Description: "Street Address (HIPAA PHI #2)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "ZIP_CODE",
			Pattern:     `\b\d{5}(?:-\d{4})?\b`,
			Description: "ZIP Code (HIPAA PHI #2)",
			Severity:    SeverityMedium,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "RACIAL_ETHNIC_ORIGIN",
			Pattern:     `\b(?:race|ethnicity|ethnic|racial|ancestry|heritage)[\s:]*[A-Za-z\s]+\b`,
			Description: "Racial or Ethnic Origin (GDPR Special Category)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{GDPR, CCPA},
		},
		{
			Type:        "POLITICAL_OPINION",
			Pattern:     `\b(?:political|party|democrat|republican|liberal|conservative|political[\s_]?affiliation)[\s:]*[A-Za-z\s]+\b`,
			Description: "Political Opinion (GDPR Special Category)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{GDPR},
		},
		{
			Type:        "RELIGIOUS_BELIEF",
			Pattern:     `\b(?:religion|religious|faith|belief|church|christian|muslim|jewish|hindu|buddhist)[\s:]*[A-Za-z\s]+\b`,
			Description: "Religious Belief (GDPR Special Category)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{GDPR, CCPA},
		},
		{
			Type:        "TRADE_UNION",
			Pattern:     `\b(?:union|trade[\s_]?union|labor[\s_]?union|membership)[\s:]*[A-Za-z\s]+\b`,
			Description: "Trade Union Membership (GDPR Special Category)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{GDPR, CCPA},
		},
		{
			Type:        "GENETIC_DATA",
			Pattern:     `\b(?:DNA|genetic|genome|chromosome|gene|hereditary)[\s_]*[A-Z0-9]{6,}\b`,
			Description: "Genetic Data (GDPR Special Category)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{GDPR, HIPAA},
		},
		{
			Type:        "HEALTH_DATA",
			Pattern:     `\b(?:diagnosis|medical|health|condition|disease|illness|treatment|medication|prescription)[\s:]*[A-Za-z0-9\s]+\b`,
			Description: "Health Data (GDPR Special Category)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{GDPR, HIPAA},
		},
		{
			Type:        "SEXUAL_ORIENTATION",
			Pattern:     `\b(?:sexual[\s_]?orientation|sexuality|gay|lesbian|straight|heterosexual|homosexual|bisexual)[\s:]*[A-Za-z\s]*\b`,
			Description: "Sexual Orientation (GDPR Special Category)",
			Severity:    SeverityCritical,
			Regulations: []Regulation{GDPR, CCPA},
		},
		{
			Type:        "GEOLOCATION",
			Pattern:     `\b(?:lat|latitude|lon|longitude|coordinates?)[\s:]*[-+]?\d{1,3}\.\d+,?\s*[-+]?\d{1,3}\.\d+\b`,
			Description: "Precise Geolocation (CCPA)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{CCPA, GDPR},
		},
		{
			Type:        "IMMIGRATION_STATUS",
			Pattern:     `\b(?:citizen|citizenship|immigration|visa|green[\s_]?card|resident|alien)[\s:]*[A-Za-z0-9\s]+\b`,
			Description: "Citizenship/Immigration Status (CCPA)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{CCPA, GDPR},
		},
		{
			Type:        "FULL_NAME",
			Pattern:     `\b[A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`,
			Description: "Full Name (HIPAA PHI #1)",
			Severity:    SeverityHigh,
			Regulations: []Regulation{HIPAA, CCPA, GDPR},
		},
		{
			Type:        "BANK_ACCOUNT",
			Pattern:     `\b(?:routing|account|aba)[\s_#:]*\d{8,17}\b`,
			Description: "Bank Account/Routing Number",
			Severity:    SeverityCritical,
			Regulations: []Regulation{CCPA, GDPR},
		},
	}
}

// SpecialCategories lists the GDPR Article 9 special-category PII types.
// Findings of these types escalate compliance reporting.
var SpecialCategories = map[string]bool{
	"RACIAL_ETHNIC_ORIGIN": true,
	"POLITICAL_OPINION":    true,
	"RELIGIOUS_BELIEF":     true,
	"TRADE_UNION":          true,
	"GENETIC_DATA":         true,
	"BIOMETRIC":            true,
	"HEALTH_DATA":          true,
	"SEXUAL_ORIENTATION":   true,
}

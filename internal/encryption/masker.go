// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package encryption provides masking, key-hint derivation, and value
// encryption for detected PII.
package encryption

import "strings"

// DefaultMaskChar is used when no mask character is configured.
const DefaultMaskChar = "*"

// Mask produces a display-safe form of a PII value using the strategy for
// its type. Masking is deterministic, one-way, and requires no key
// material; it is a display transform, not the inverse of encryption.
func Mask(value, piiType string) string {
	return MaskWith(value, piiType, DefaultMaskChar)
}

// MaskWith is Mask with an explicit mask character.
func MaskWith(value, piiType, maskChar string) string {
	if value == "" {
		return value
	}

	switch piiType {
	case "SSN", "SOCIAL_SECURITY_NUMBER":
		return maskKeepLast4(value, maskChar)

	case "EMAIL", "EMAIL_ADDRESS":
		return maskEmail(value, maskChar)

	case "PHONE", "PHONE_NUMBER":
		return maskPhone(value, maskChar)

	case "CREDIT_CARD", "CREDIT_CARD_NUMBER":
		return maskKeepLast4(value, maskChar)

	case "FULL_NAME", "FIRST_NAME", "LAST_NAME":
		return maskName(value, maskChar)

	case "ADDRESS":
		if len(value) > 10 {
			return value[:3] + strings.Repeat(maskChar, len(value)-3)
		}
		return strings.Repeat(maskChar, len(value))

	default:
		// Generic strategy: keep the first and last two characters.
		if len(value) <= 4 {
			return strings.Repeat(maskChar, len(value))
		}
		return value[:2] + strings.Repeat(maskChar, len(value)-4) + value[len(value)-2:]
	}
}

// maskKeepLast4 masks everything but the last four characters.
func maskKeepLast4(value, maskChar string) string {
	if len(value) < 4 {
		return strings.Repeat(maskChar, len(value))
	}
	return strings.Repeat(maskChar, len(value)-4) + value[len(value)-4:]
}

// maskEmail keeps the first local character and the full domain.
func maskEmail(value, maskChar string) string {
	at := strings.Index(value, "@")
	if at <= 0 {
		return strings.Repeat(maskChar, len(value))
	}
	local, domain := value[:at], value[at+1:]
	return local[:1] + strings.Repeat(maskChar, len(local)-1) + "@" + domain
}

// maskPhone masks all but the last four digits while preserving the
// original non-digit formatting.
func maskPhone(value, maskChar string) string {
	var digits []byte
	for i := 0; i < len(value); i++ {
		if value[i] >= '0' && value[i] <= '9' {
			digits = append(digits, value[i])
		}
	}
	if len(digits) < 4 {
		return strings.Repeat(maskChar, len(value))
	}

	masked := strings.Repeat(maskChar, len(digits)-4) + string(digits[len(digits)-4:])

	var b strings.Builder
	b.Grow(len(value))
	digitIndex := 0
	for i := 0; i < len(value); i++ {
		if value[i] >= '0' && value[i] <= '9' {
			b.WriteByte(masked[digitIndex])
			digitIndex++
		} else {
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

// maskName keeps the first letter of each whitespace-separated token.
func maskName(value, maskChar string) string {
	words := strings.Fields(value)
	masked := make([]string, 0, len(words))
	for _, w := range words {
		masked = append(masked, w[:1]+strings.Repeat(maskChar, len(w)-1))
	}
	return strings.Join(masked, " ")
}

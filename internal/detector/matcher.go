// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"unicode/utf8"

	"piiscan/internal/registry"
)

// Matcher scans text against every active pattern in the registry. It holds
// no mutable state and may be shared across concurrent scans.
type Matcher struct {
	registry *registry.Registry
}

// NewMatcher creates a matcher over the given registry.
func NewMatcher(reg *registry.Registry) *Matcher {
	return &Matcher{registry: reg}
}

// FindMatches returns every non-overlapping occurrence of every active
// pattern in text. Blank input yields an empty result, not an error. The
// same input always yields the same candidate set.
func (m *Matcher) FindMatches(text string) []RawMatch {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var matches []RawMatch
	for _, def := range m.registry.Definitions() {
		for _, loc := range def.Regex().FindAllStringIndex(text, -1) {
			matches = append(matches, RawMatch{
				PatternType: def.Type,
				Value:       text[loc[0]:loc[1]],
				// Positions are character offsets, not byte offsets.
				Position: utf8.RuneCountInString(text[:loc[0]]),
			})
		}
	}
	return matches
}

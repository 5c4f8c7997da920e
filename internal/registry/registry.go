// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"piiscan/internal/observability"
)

// Severity is the qualitative sensitivity tier of a PII type.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Regulation identifies a privacy regulation a PII type falls under.
type Regulation string

const (
	GDPR  Regulation = "GDPR"
	CCPA  Regulation = "CCPA"
	HIPAA Regulation = "HIPAA"
)

// PatternDefinition describes how one PII type is detected and classified.
// Definitions are immutable once the registry is built.
type PatternDefinition struct {
	Type        string
	Pattern     string
	Description string
	Severity    Severity
	Regulations []Regulation

	regex *regexp.Regexp
}

// Regex returns the compiled case-insensitive pattern.
func (d *PatternDefinition) Regex() *regexp.Regexp {
	return d.regex
}

// AppliesTo reports whether the definition is flagged under reg.
func (d *PatternDefinition) AppliesTo(reg Regulation) bool {
	for _, r := range d.Regulations {
		if r == reg {
			return true
		}
	}
	return false
}

// ErrNotFound is returned by Lookup for unknown PII types.
var ErrNotFound = errors.New("pii type not registered")

// Registry holds the active set of compiled pattern definitions. It is
// read-only after construction and safe for concurrent use.
type Registry struct {
	defs map[string]*PatternDefinition
}

// New compiles the given definitions into a registry. Patterns are compiled
// case-insensitively. A definition whose pattern fails to compile is logged
// through the observer and excluded; construction only fails when no
// definition survives.
func New(defs []PatternDefinition, observer *observability.Observer) (*Registry, error) {
	r := &Registry{defs: make(map[string]*PatternDefinition, len(defs))}

	for _, def := range defs {
		d := def
		regex, err := regexp.Compile("(?i)" + d.Pattern)
		if err != nil {
			observer.Warn("registry", "compile_pattern",
				fmt.Sprintf("excluding pattern %s: %v", d.Type, err))
			continue
		}
		d.regex = regex
		r.defs[d.Type] = &d
	}

	if len(r.defs) == 0 {
		return nil, fmt.Errorf("pattern registry: no patterns compiled from %d definitions", len(defs))
	}
	return r, nil
}

// NewDefault builds a registry from the built-in pattern set.
func NewDefault(observer *observability.Observer) (*Registry, error) {
	return New(BuiltinPatterns(), observer)
}

// Lookup returns the definition for a PII type, or ErrNotFound.
func (r *Registry) Lookup(piiType string) (*PatternDefinition, error) {
	def, ok := r.defs[piiType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, piiType)
	}
	return def, nil
}

// AllTypes returns the sorted names of every active PII type.
func (r *Registry) AllTypes() []string {
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Definitions returns every active definition. Callers must not mutate the
// returned values.
func (r *Registry) Definitions() []*PatternDefinition {
	defs := make([]*PatternDefinition, 0, len(r.defs))
	for _, t := range r.AllTypes() {
		defs = append(defs, r.defs[t])
	}
	return defs
}

// Severity returns the severity tier for a PII type, defaulting to LOW for
// unknown types so aggregation never fails on a missing entry.
func (r *Registry) Severity(piiType string) Severity {
	if def, ok := r.defs[piiType]; ok {
		return def.Severity
	}
	return SeverityLow
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"math/rand"
	"sort"

	"piiscan/internal/classifier"
	"piiscan/internal/observability"
	"piiscan/internal/registry"
	"piiscan/internal/validators"
)

// sampleSeed fixes the sampling order so the same column state always draws
// the same sample. Reproducible scans are part of the contract.
const sampleSeed = 42

// Options bound how much of a column is inspected and what counts as a
// high-confidence match.
type Options struct {
	SampleSize          int
	ConfidenceThreshold float64
}

// DefaultOptions mirrors the documented configuration defaults.
func DefaultOptions() Options {
	return Options{SampleSize: 100, ConfidenceThreshold: 0.7}
}

// Engine runs the full detection pipeline for one column or text value. It
// is safe for concurrent use: all fields are read-only after construction.
type Engine struct {
	registry   *registry.Registry
	matcher    *Matcher
	validators *validators.Set
	classifier *classifier.Classifier
	opts       Options
	observer   *observability.Observer
}

// NewEngine wires the detection pipeline. The registry is shared, not
// copied; it must outlive the engine.
func NewEngine(reg *registry.Registry, opts Options, observer *observability.Observer) *Engine {
	return &Engine{
		registry:   reg,
		matcher:    NewMatcher(reg),
		validators: validators.NewSet(),
		classifier: classifier.New(),
		opts:       opts,
		observer:   observer,
	}
}

// SuspectedTypes exposes column-name classification.
func (e *Engine) SuspectedTypes(columnName string) []string {
	return e.classifier.SuspectedTypes(columnName)
}

// Blend combines value-level validation confidence with column-name
// suspicion: agreement between the two signals adds 0.2, capped at 1.0.
// A name match can only raise confidence, never lower it.
func (e *Engine) Blend(piiType string, validated float64, columnName string) float64 {
	for _, t := range e.classifier.SuspectedTypes(columnName) {
		if t == piiType {
			validated += 0.2
			break
		}
	}
	if validated > 1.0 {
		return 1.0
	}
	return validated
}

// DetectInText runs match, validate, and blend over one text value,
// returning finished PII findings.
func (e *Engine) DetectInText(text, columnName string, rowIndex int) []Match {
	raw := e.matcher.FindMatches(text)
	if len(raw) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(raw))
	for _, rm := range raw {
		validated := e.validators.Validate(rm.PatternType, rm.Value)
		matches = append(matches, Match{
			PatternType: rm.PatternType,
			Value:       rm.Value,
			Confidence:  e.Blend(rm.PatternType, validated, columnName),
			Position:    rm.Position,
			Column:      columnName,
			RowIndex:    rowIndex,
		})
	}
	return matches
}

// AnalyzeColumn scans a deterministic sample of a column's values and
// aggregates the findings into a ColumnAnalysis with a risk score.
func (e *Engine) AnalyzeColumn(columnName, dataType string, values []Value) ColumnAnalysis {
	finish := e.observer.StartTiming("detector", "analyze_column", columnName)

	suspected := e.classifier.SuspectedTypes(columnName)

	nonNull := make([]Value, 0, len(values))
	unique := make(map[string]struct{})
	for _, v := range values {
		if v.Null {
			continue
		}
		nonNull = append(nonNull, v)
		unique[v.Text] = struct{}{}
	}

	var matches []Match
	for _, v := range e.sample(nonNull) {
		matches = append(matches, e.DetectInText(v.Text, columnName, v.Row)...)
	}

	analysis := ColumnAnalysis{
		ColumnName:        columnName,
		DataType:          dataType,
		TotalRows:         len(values),
		NonNullRows:       len(nonNull),
		UniqueValues:      len(unique),
		SuspectedPIITypes: suspected,
		PIIMatches:        matches,
		RiskScore:         e.riskScore(suspected, matches, len(nonNull)),
	}

	finish(true, map[string]any{"match_count": len(matches), "risk_score": analysis.RiskScore})
	return analysis
}

// sample draws up to SampleSize values using a fixed seed so repeated scans
// of the same column state see the same rows.
func (e *Engine) sample(values []Value) []Value {
	if len(values) <= e.opts.SampleSize {
		return values
	}

	rng := rand.New(rand.NewSource(sampleSeed))
	perm := rng.Perm(len(values))[:e.opts.SampleSize]
	sort.Ints(perm)

	sampled := make([]Value, 0, e.opts.SampleSize)
	for _, i := range perm {
		sampled = append(sampled, values[i])
	}
	return sampled
}

// riskScore additively combines naming signal, match density, and severity.
// Each term is individually bounded so no single signal forces the score to
// 1.0; match density is the dominant term. The formula is contractual
// legacy behavior, not a calibrated model.
func (e *Engine) riskScore(suspected []string, matches []Match, nonNullRows int) float64 {
	if nonNullRows == 0 {
		return 0.0
	}

	base := 0.2 * float64(len(suspected))

	var highConfidence []Match
	for _, m := range matches {
		if m.Confidence >= e.opts.ConfidenceThreshold {
			highConfidence = append(highConfidence, m)
		}
	}

	matchScore := 2 * float64(len(highConfidence)) / float64(nonNullRows)
	if matchScore > 0.8 {
		matchScore = 0.8
	}

	var severityBonus float64
	for _, m := range highConfidence {
		switch e.registry.Severity(m.PatternType) {
		case registry.SeverityHigh:
			severityBonus += 0.1
		case registry.SeverityMedium:
			severityBonus += 0.05
		}
	}
	if severityBonus > 0.3 {
		severityBonus = 0.3
	}

	total := base + matchScore + severityBonus
	if total > 1.0 {
		return 1.0
	}
	return total
}

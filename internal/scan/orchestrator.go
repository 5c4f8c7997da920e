// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package scan orchestrates full data-source scans: it fans tables out to a
// bounded worker pool, runs the detection pipeline per column, attaches
// protection decisions, and persists masked findings.
package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"piiscan/internal/decision"
	"piiscan/internal/detector"
	"piiscan/internal/encryption"
	"piiscan/internal/observability"
	"piiscan/internal/registry"
	"piiscan/internal/results"
	"piiscan/internal/source"

	"github.com/google/uuid"
)

// Table scan statuses. A failure in one table never aborts the others.
const (
	StatusSuccess = "SUCCESS"
	StatusPartial = "PARTIAL"
	StatusFailed  = "FAILED"
)

// Finding is one column-level PII finding with its protection decision
// attached. MaskedSample never holds raw data.
type Finding struct {
	Column            string   `json:"column"`
	PIIType           string   `json:"pii_type"`
	Confidence        float64  `json:"confidence"`
	MaskedSample      string   `json:"masked_sample"`
	Action            string   `json:"action"`
	Reasoning         string   `json:"reasoning"`
	EncryptionKeyHint string   `json:"encryption_key_hint,omitempty"`
	Regulations       []string `json:"regulations,omitempty"`
}

// TableReport is the outcome of scanning one table.
type TableReport struct {
	Table       string                    `json:"table"`
	Status      string                    `json:"status"`
	Error       string                    `json:"error,omitempty"`
	RowsSampled int                       `json:"rows_sampled"`
	Columns     []detector.ColumnAnalysis `json:"-"`
	Findings    []Finding                 `json:"findings,omitempty"`
	Duration    time.Duration             `json:"duration"`
}

// Report is the outcome of one complete scan run.
type Report struct {
	ScanID        string        `json:"scan_id"`
	Database      string        `json:"database"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   time.Time     `json:"completed_at"`
	Tables        []TableReport `json:"tables"`
	TablesScanned int           `json:"tables_scanned"`
	Succeeded     int           `json:"succeeded"`
	Partial       int           `json:"partial"`
	Failed        int           `json:"failed"`
	TotalFindings int           `json:"total_findings"`
}

// Options bound one scan run.
type Options struct {
	MaxConcurrentScans  int
	TableTimeout        time.Duration
	MaxRowsToScan       int
	ConfidenceThreshold float64
}

// DefaultOptions returns the standard scan bounds.
func DefaultOptions() Options {
	return Options{
		MaxConcurrentScans:  5,
		TableTimeout:        5 * time.Minute,
		MaxRowsToScan:       10000,
		ConfidenceThreshold: 0.7,
	}
}

// Orchestrator runs scans. Store is optional; when nil, findings are only
// reported, not persisted.
type Orchestrator struct {
	sampler  source.Sampler
	engine   *detector.Engine
	registry *registry.Registry
	decider  *decision.Maker
	store    *results.Store
	observer *observability.Observer
	opts     Options
}

// NewOrchestrator wires a scan orchestrator from its pipeline components.
func NewOrchestrator(sampler source.Sampler, engine *detector.Engine, reg *registry.Registry,
	decider *decision.Maker, store *results.Store, opts Options, observer *observability.Observer) *Orchestrator {
	if opts.MaxConcurrentScans <= 0 {
		opts.MaxConcurrentScans = DefaultOptions().MaxConcurrentScans
	}
	if opts.TableTimeout <= 0 {
		opts.TableTimeout = DefaultOptions().TableTimeout
	}
	if opts.MaxRowsToScan <= 0 {
		opts.MaxRowsToScan = DefaultOptions().MaxRowsToScan
	}
	// 0.0 is a legal catch-everything threshold; only a negative value
	// means unset.
	if opts.ConfidenceThreshold < 0 {
		opts.ConfidenceThreshold = DefaultOptions().ConfidenceThreshold
	}
	return &Orchestrator{
		sampler:  sampler,
		engine:   engine,
		registry: reg,
		decider:  decider,
		store:    store,
		observer: observer,
		opts:     opts,
	}
}

// Run scans every table the sampler exposes and returns an aggregate report.
// Individual table failures are recorded in the report, not returned as
// errors; Run fails only when the table listing or session bookkeeping fails.
func (o *Orchestrator) Run(ctx context.Context, database string) (*Report, error) {
	report := &Report{
		ScanID:    uuid.NewString(),
		Database:  database,
		StartedAt: time.Now().UTC(),
	}

	done := o.observer.StartTiming("scan", "run", database)

	tables, err := o.sampler.ListTables(ctx)
	if err != nil {
		done(false, nil)
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	if o.store != nil {
		err := o.store.BeginSession(ctx, results.Session{
			ScanID:           report.ScanID,
			StartedAt:        report.StartedAt,
			DatabasesScanned: []string{database},
		})
		if err != nil {
			done(false, nil)
			return nil, fmt.Errorf("recording scan session: %w", err)
		}
	}

	reports := make([]TableReport, len(tables))
	sem := make(chan struct{}, o.opts.MaxConcurrentScans)
	var wg sync.WaitGroup

	for i, ref := range tables {
		wg.Add(1)
		go func(i int, ref source.TableRef) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			reports[i] = o.scanTable(ctx, report.ScanID, database, ref)
		}(i, ref)
	}
	wg.Wait()

	report.Tables = reports
	report.CompletedAt = time.Now().UTC()
	for _, tr := range reports {
		report.TablesScanned++
		report.TotalFindings += len(tr.Findings)
		switch tr.Status {
		case StatusSuccess:
			report.Succeeded++
		case StatusPartial:
			report.Partial++
		default:
			report.Failed++
		}
	}

	if o.store != nil {
		status := "COMPLETED"
		if report.Failed > 0 {
			status = "PARTIAL"
		}
		if err := o.store.CompleteSession(ctx, report.ScanID, report.TablesScanned, report.TotalFindings, status); err != nil {
			o.observer.Warn("scan", "complete_session", fmt.Sprintf("failed to finalize scan session: %v", err))
		}
	}

	done(report.Failed == 0, map[string]any{
		"scan_id":        report.ScanID,
		"tables_scanned": report.TablesScanned,
		"total_findings": report.TotalFindings,
		"failed":         report.Failed,
	})
	return report, nil
}

// scanTable samples and analyzes one table under its own timeout. Panics and
// errors are contained here so sibling tables are unaffected.
func (o *Orchestrator) scanTable(ctx context.Context, scanID, database string, ref source.TableRef) (tr TableReport) {
	start := time.Now()
	tr = TableReport{Table: ref.String(), Status: StatusSuccess}

	defer func() {
		tr.Duration = time.Since(start)
		if r := recover(); r != nil {
			tr.Status = StatusFailed
			tr.Error = fmt.Sprintf("panic while scanning table: %v", r)
			o.observer.Warn("scan", "table_scan", tr.Error)
		}
	}()

	tableCtx, cancel := context.WithTimeout(ctx, o.opts.TableTimeout)
	defer cancel()

	sample, err := o.sampler.SampleTable(tableCtx, ref, o.opts.MaxRowsToScan)
	if err != nil {
		tr.Status = StatusFailed
		tr.Error = fmt.Sprintf("sampling failed: %v", err)
		o.observer.Warn("scan", "table_scan", fmt.Sprintf("table %s: %s", ref, tr.Error))
		return tr
	}
	tr.RowsSampled = len(sample.Rows)

	for _, col := range sample.Columns {
		if tableCtx.Err() != nil {
			tr.Status = StatusPartial
			tr.Error = fmt.Sprintf("analysis interrupted: %v", tableCtx.Err())
			break
		}

		values := source.ColumnValues(sample, col.Name)
		analysis := o.engine.AnalyzeColumn(col.Name, col.DeclaredType, values)
		tr.Columns = append(tr.Columns, analysis)

		tr.Findings = append(tr.Findings, o.findings(tableCtx, database, ref, analysis)...)
	}

	if o.store != nil && len(tr.Findings) > 0 {
		if err := o.persist(ctx, scanID, database, ref, tr.Findings); err != nil {
			if tr.Status == StatusSuccess {
				tr.Status = StatusPartial
			}
			tr.Error = fmt.Sprintf("persisting findings: %v", err)
			o.observer.Warn("scan", "table_scan", fmt.Sprintf("table %s: %s", ref, tr.Error))
		}
	}

	return tr
}

// findings distills one column analysis into decision-annotated findings.
// Each detected PII type yields at most one finding, carrying the highest
// confidence seen for that type.
func (o *Orchestrator) findings(ctx context.Context, database string, ref source.TableRef, analysis detector.ColumnAnalysis) []Finding {
	best := make(map[string]detector.Match)
	for _, m := range analysis.PIIMatches {
		if m.Confidence < o.opts.ConfidenceThreshold {
			continue
		}
		if cur, ok := best[m.PatternType]; !ok || m.Confidence > cur.Confidence {
			best[m.PatternType] = m
		}
	}
	if len(best) == 0 {
		return nil
	}

	types := make([]string, 0, len(best))
	for t := range best {
		types = append(types, t)
	}
	sort.Strings(types)

	findings := make([]Finding, 0, len(types))
	for _, piiType := range types {
		m := best[piiType]
		d := o.decider.Decide(ctx, piiType, m.Confidence, decision.Context{
			Database: database,
			Schema:   ref.Schema,
			Table:    ref.Table,
			Column:   analysis.ColumnName,
		})

		f := Finding{
			Column:       analysis.ColumnName,
			PIIType:      piiType,
			Confidence:   m.Confidence,
			MaskedSample: encryption.Mask(m.Value, piiType),
			Action:       string(d.Action),
			Reasoning:    d.Reasoning,
			Regulations:  o.regulations(piiType),
		}
		if d.Action == decision.ActionEncrypt {
			f.EncryptionKeyHint = encryption.KeyHint(piiType, ref.Table, time.Now().UTC())
		}
		findings = append(findings, f)
	}
	return findings
}

func (o *Orchestrator) regulations(piiType string) []string {
	def, err := o.registry.Lookup(piiType)
	if err != nil {
		return nil
	}
	flags := make([]string, 0, len(def.Regulations))
	for _, r := range def.Regulations {
		flags = append(flags, string(r))
	}
	return flags
}

func (o *Orchestrator) persist(ctx context.Context, scanID, database string, ref source.TableRef, findings []Finding) error {
	now := time.Now().UTC()
	records := make([]results.Record, 0, len(findings))
	for _, f := range findings {
		if f.Action == string(decision.ActionIgnore) {
			continue
		}
		records = append(records, results.Record{
			ScanID:            scanID,
			DatabaseName:      database,
			SchemaName:        ref.Schema,
			TableName:         ref.Table,
			ColumnName:        f.Column,
			PIIType:           f.PIIType,
			ConfidenceScore:   f.Confidence,
			SampleValueMasked: f.MaskedSample,
			ActionTaken:       f.Action,
			EncryptionKeyHint: f.EncryptionKeyHint,
			DetectedAt:        now,
			RegulatoryFlags:   f.Regulations,
		})
	}
	return o.store.InsertRecords(ctx, records)
}

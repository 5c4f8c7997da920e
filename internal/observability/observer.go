// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Level controls how much operational detail is emitted.
type Level int

const (
	LevelOff     Level = 0
	LevelMetrics Level = 1
	LevelDebug   Level = 2
)

// Observer records timing and outcome data for scan components.
// A nil *Observer is safe to use; every method becomes a no-op.
type Observer struct {
	level  Level
	mu     sync.Mutex
	writer io.Writer
}

// NewObserver creates an observer writing structured records to w.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// Record is the structured form of one logged operation.
type Record struct {
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	Target     string         `json:"target,omitempty"`
	Severity   string         `json:"severity,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
	MatchCount int            `json:"match_count,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StartTiming returns a completion function that logs the elapsed time for
// an operation along with its outcome.
func (o *Observer) StartTiming(component, operation, target string) func(success bool, metadata map[string]any) {
	if o == nil {
		return func(bool, map[string]any) {}
	}
	start := time.Now()
	return func(success bool, metadata map[string]any) {
		o.Log(Record{
			Component:  component,
			Operation:  operation,
			Target:     target,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// Warn logs a warning-severity record regardless of debug mode, as long as
// the observer is not disabled.
func (o *Observer) Warn(component, operation, message string) {
	if o == nil || o.level == LevelOff {
		return
	}
	o.emit(Record{Component: component, Operation: operation, Severity: "WARNING", Message: message, Success: false})
}

// Log records operation data. Full records are only written in debug mode;
// warnings go through Warn.
func (o *Observer) Log(rec Record) {
	if o == nil || o.level < LevelDebug {
		return
	}
	o.emit(rec)
}

func (o *Observer) emit(rec Record) {
	o.mu.Lock()
	defer o.mu.Unlock()
	json.NewEncoder(o.writer).Encode(rec)
}

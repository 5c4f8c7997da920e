// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") returned error: %v", err)
	}

	if cfg.Scan.SampleSize != 100 {
		t.Errorf("expected default sample_size 100, got %d", cfg.Scan.SampleSize)
	}
	if cfg.Scan.ConfidenceThreshold != 0.7 {
		t.Errorf("expected default confidence_threshold 0.7, got %v", cfg.Scan.ConfidenceThreshold)
	}
	if cfg.Scan.MaxRowsToScan != 10000 {
		t.Errorf("expected default max_rows_to_scan 10000, got %d", cfg.Scan.MaxRowsToScan)
	}
	if cfg.Scan.MaxConcurrentScans != 5 {
		t.Errorf("expected default max_concurrent_scans 5, got %d", cfg.Scan.MaxConcurrentScans)
	}
	if cfg.Scan.TableTimeout.Std() != 5*time.Minute {
		t.Errorf("expected default table_timeout 5m, got %v", cfg.Scan.TableTimeout.Std())
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected default format text, got %s", cfg.Output.Format)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piiscan.yaml")
	content := `scan:
  sample_size: 250
  confidence_threshold: 0.85
  table_timeout: 90s
output:
  format: json
  verbose: true
results:
  database_path: /tmp/results.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Scan.SampleSize != 250 {
		t.Errorf("expected sample_size 250, got %d", cfg.Scan.SampleSize)
	}
	if cfg.Scan.ConfidenceThreshold != 0.85 {
		t.Errorf("expected confidence_threshold 0.85, got %v", cfg.Scan.ConfidenceThreshold)
	}
	if cfg.Scan.TableTimeout.Std() != 90*time.Second {
		t.Errorf("expected table_timeout 90s, got %v", cfg.Scan.TableTimeout.Std())
	}
	// Values not in the file keep their defaults
	if cfg.Scan.MaxRowsToScan != 10000 {
		t.Errorf("expected default max_rows_to_scan 10000, got %d", cfg.Scan.MaxRowsToScan)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format json, got %s", cfg.Output.Format)
	}
	if !cfg.Output.Verbose {
		t.Error("expected verbose true")
	}
	if cfg.Results.DatabasePath != "/tmp/results.db" {
		t.Errorf("expected results path /tmp/results.db, got %s", cfg.Results.DatabasePath)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/piiscan.yaml")
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigInvalidThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piiscan.yaml")
	content := "scan:\n  confidence_threshold: 1.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("expected validation error for confidence_threshold 1.5")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PIISCAN_SAMPLE_SIZE", "50")
	t.Setenv("PIISCAN_CONFIDENCE_THRESHOLD", "0.9")
	t.Setenv("PIISCAN_TABLE_TIMEOUT", "30s")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Scan.SampleSize != 50 {
		t.Errorf("expected sample_size 50 from env, got %d", cfg.Scan.SampleSize)
	}
	if cfg.Scan.ConfidenceThreshold != 0.9 {
		t.Errorf("expected confidence_threshold 0.9 from env, got %v", cfg.Scan.ConfidenceThreshold)
	}
	if cfg.Scan.TableTimeout.Std() != 30*time.Second {
		t.Errorf("expected table_timeout 30s from env, got %v", cfg.Scan.TableTimeout.Std())
	}
}

func TestEnvOverridesIgnoreUnparseable(t *testing.T) {
	t.Setenv("PIISCAN_SAMPLE_SIZE", "not-a-number")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Scan.SampleSize != 100 {
		t.Errorf("expected default sample_size when env is unparseable, got %d", cfg.Scan.SampleSize)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"negative threshold", func(c *Config) { c.Scan.ConfidenceThreshold = -0.1 }, true},
		{"zero sample size", func(c *Config) { c.Scan.SampleSize = 0 }, true},
		{"zero workers", func(c *Config) { c.Scan.MaxConcurrentScans = 0 }, true},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadConfigOrDefaultFallsBack(t *testing.T) {
	cfg := LoadConfigOrDefault("/nonexistent/piiscan.yaml")
	if cfg == nil {
		t.Fatal("expected fallback config, got nil")
	}
	if cfg.Scan.SampleSize != 100 {
		t.Errorf("expected default sample_size in fallback, got %d", cfg.Scan.SampleSize)
	}
}

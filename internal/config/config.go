// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration supports human-readable YAML values such as "30s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration
type Config struct {
	// Scan settings
	Scan struct {
		SampleSize          int           `yaml:"sample_size"`
		ConfidenceThreshold float64       `yaml:"confidence_threshold"`
		MaxRowsToScan       int           `yaml:"max_rows_to_scan"`
		MaxConcurrentScans  int           `yaml:"max_concurrent_scans"`
		TableTimeout        Duration      `yaml:"table_timeout"`
	} `yaml:"scan"`

	// Output settings
	Output struct {
		Format  string `yaml:"format"`
		File    string `yaml:"file"`
		NoColor bool   `yaml:"no_color"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"output"`

	// Results database settings
	Results struct {
		DatabasePath string `yaml:"database_path"`
	} `yaml:"results"`

	// Encryption settings
	Encryption struct {
		MasterKeyPath string `yaml:"master_key_path"`
	} `yaml:"encryption"`

	// Advisory classifier settings
	Advisory struct {
		Enabled bool     `yaml:"enabled"`
		Timeout Duration `yaml:"timeout"`
	} `yaml:"advisory"`
}

// LoadConfig loads configuration from a YAML file. If configPath is empty,
// default values are returned. Environment variables with the PIISCAN_
// prefix override file values either way.
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath != "" {
		cleanPath := filepath.Clean(configPath)
		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	config := &Config{}

	config.Scan.SampleSize = 100
	config.Scan.ConfidenceThreshold = 0.7
	config.Scan.MaxRowsToScan = 10000
	config.Scan.MaxConcurrentScans = 5
	config.Scan.TableTimeout = Duration(5 * time.Minute)

	config.Output.Format = "text"

	config.Results.DatabasePath = "piiscan_results.db"
	config.Encryption.MasterKeyPath = defaultKeyPath()

	config.Advisory.Enabled = false
	config.Advisory.Timeout = Duration(10 * time.Second)

	return config
}

func defaultKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".piiscan_master.key"
	}
	return filepath.Join(home, ".piiscan", "master.key")
}

// applyEnvOverrides applies PIISCAN_* environment variables on top of the
// loaded configuration. Unparseable values are ignored.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("PIISCAN_SAMPLE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Scan.SampleSize = n
		}
	}
	if v := os.Getenv("PIISCAN_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Scan.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("PIISCAN_MAX_ROWS_TO_SCAN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Scan.MaxRowsToScan = n
		}
	}
	if v := os.Getenv("PIISCAN_MAX_CONCURRENT_SCANS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Scan.MaxConcurrentScans = n
		}
	}
	if v := os.Getenv("PIISCAN_TABLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Scan.TableTimeout = Duration(d)
		}
	}
	if v := os.Getenv("PIISCAN_RESULTS_DB"); v != "" {
		config.Results.DatabasePath = v
	}
	if v := os.Getenv("PIISCAN_MASTER_KEY_PATH"); v != "" {
		config.Encryption.MasterKeyPath = v
	}
}

// ValidateConfig checks that configuration values are usable.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if config.Scan.ConfidenceThreshold < 0 || config.Scan.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be between 0.0 and 1.0, got %v", config.Scan.ConfidenceThreshold)
	}
	if config.Scan.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d", config.Scan.SampleSize)
	}
	if config.Scan.MaxRowsToScan <= 0 {
		return fmt.Errorf("max_rows_to_scan must be positive, got %d", config.Scan.MaxRowsToScan)
	}
	if config.Scan.MaxConcurrentScans <= 0 {
		return fmt.Errorf("max_concurrent_scans must be positive, got %d", config.Scan.MaxConcurrentScans)
	}
	if config.Scan.TableTimeout <= 0 {
		return fmt.Errorf("table_timeout must be positive, got %v", config.Scan.TableTimeout)
	}
	switch config.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format: %s", config.Output.Format)
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	candidates := []string{
		"piiscan.yaml",
		"piiscan.yml",
		".piiscan.yaml",
		".piiscan.yml",
	}
	for _, name := range candidates {
		if fileExists(name) {
			return name
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	standard := filepath.Join(home, ".piiscan", "config.yaml")
	if fileExists(standard) {
		return standard
	}
	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration so callers do not crash on a missing or bad config file.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"piiscan/internal/config"
	"piiscan/internal/decision"
	"piiscan/internal/detector"
	"piiscan/internal/encryption"
	"piiscan/internal/formatters"
	jsonfmt "piiscan/internal/formatters/json"
	textfmt "piiscan/internal/formatters/text"
	"piiscan/internal/observability"
	"piiscan/internal/registry"
	"piiscan/internal/report"
	"piiscan/internal/results"
	"piiscan/internal/scan"
	"piiscan/internal/source"

	"golang.org/x/term"
)

const version = "1.0.0"

func main() {
	dataDir := flag.String("dir", "", "Directory of CSV files to scan (each file is treated as a table)")
	databaseName := flag.String("database", "", "Logical database name recorded with findings (default: the directory name)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	outputFormat := flag.String("format", "", "Output format: text, json (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	sampleSize := flag.Int("sample-size", 0, "Values sampled per column (default: 100)")
	threshold := flag.Float64("confidence-threshold", 0, "Minimum confidence for reporting a finding (default: 0.7)")
	workers := flag.Int("workers", 0, "Maximum tables scanned concurrently (default: 5)")
	resultsDB := flag.String("results-db", "", "Path to the SQLite results database (empty disables persistence)")
	noPersist := flag.Bool("no-persist", false, "Do not persist findings to the results database")
	verbose := flag.Bool("verbose", false, "Display detailed information for each finding")
	debug := flag.Bool("debug", false, "Enable debug logging of the detection flow")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version information")
	encryptValue := flag.String("encrypt-value", "", "Encrypt one value with the master key and print its metadata as JSON")
	keyHint := flag.String("key-hint", "", "Key hint used with -encrypt-value (default: derived for type OTHER)")
	decryptStdin := flag.Bool("decrypt", false, "Read encryption metadata JSON from stdin and print the plaintext")
	flag.Parse()

	if *showVersion {
		fmt.Printf("piiscan %s\n", version)
		return
	}

	if *encryptValue != "" || *decryptStdin {
		cfg := loadConfiguration(*configFile)
		if err := runCrypto(cfg, *encryptValue, *keyHint, *decryptStdin); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *dataDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := loadConfiguration(*configFile)
	applyFlagOverrides(cfg, *outputFormat, *outputFile, *sampleSize, *threshold, *workers, *resultsDB, *verbose, *noColor)

	if err := run(cfg, *dataDir, *databaseName, *debug, *noPersist); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// applyFlagOverrides lets explicit command line flags win over config values.
func applyFlagOverrides(cfg *config.Config, format, output string, sampleSize int, threshold float64, workers int, resultsDB string, verbose, noColor bool) {
	if format != "" {
		cfg.Output.Format = format
	}
	if output != "" {
		cfg.Output.File = output
	}
	if sampleSize > 0 {
		cfg.Scan.SampleSize = sampleSize
	}
	if threshold > 0 {
		cfg.Scan.ConfidenceThreshold = threshold
	}
	if workers > 0 {
		cfg.Scan.MaxConcurrentScans = workers
	}
	if resultsDB != "" {
		cfg.Results.DatabasePath = resultsDB
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.NoColor = true
	}
}

func run(cfg *config.Config, dataDir, databaseName string, debug, noPersist bool) error {
	level := observability.LevelMetrics
	if debug {
		level = observability.LevelDebug
	}
	observer := observability.NewObserver(level, os.Stderr)

	reg, err := registry.NewDefault(observer)
	if err != nil {
		return fmt.Errorf("building pattern registry: %w", err)
	}

	engine := detector.NewEngine(reg, detector.Options{
		SampleSize:          cfg.Scan.SampleSize,
		ConfidenceThreshold: cfg.Scan.ConfidenceThreshold,
	}, observer)

	decider := decision.NewMaker(nil, cfg.Advisory.Timeout.Std(), observer)

	sampler := source.NewCSVSampler(dataDir, "")

	var store *results.Store
	if !noPersist && cfg.Results.DatabasePath != "" {
		store, err = results.Open(cfg.Results.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
		defer store.Close()
	}

	orch := scan.NewOrchestrator(sampler, engine, reg, decider, store, scan.Options{
		MaxConcurrentScans:  cfg.Scan.MaxConcurrentScans,
		TableTimeout:        cfg.Scan.TableTimeout.Std(),
		MaxRowsToScan:       cfg.Scan.MaxRowsToScan,
		ConfidenceThreshold: cfg.Scan.ConfidenceThreshold,
	}, observer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if databaseName == "" {
		databaseName = dataDir
	}
	scanReport, err := orch.Run(ctx, databaseName)
	if err != nil {
		return err
	}

	compliance := report.Generate(scanReport, reg)
	return writeOutput(cfg, scanReport, &compliance)
}

func writeOutput(cfg *config.Config, scanReport *scan.Report, compliance *report.ComplianceReport) error {
	fmtRegistry := formatters.NewRegistry()
	fmtRegistry.Register(textfmt.NewFormatter())
	fmtRegistry.Register(jsonfmt.NewFormatter())

	formatter, ok := fmtRegistry.Get(cfg.Output.Format)
	if !ok {
		return fmt.Errorf("unknown output format: %s", cfg.Output.Format)
	}

	noColor := cfg.Output.NoColor
	if cfg.Output.File != "" || !isTerminal(os.Stdout) {
		noColor = true
	}

	out, err := formatter.Format(scanReport, compliance, formatters.Options{
		Verbose: cfg.Output.Verbose,
		NoColor: noColor,
	})
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if cfg.Output.File != "" {
		if err := os.WriteFile(cfg.Output.File, []byte(out+"\n"), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}
	fmt.Println(out)
	return nil
}

// runCrypto handles the standalone encrypt/decrypt utility operations.
func runCrypto(cfg *config.Config, value, hint string, decrypt bool) error {
	enc, err := encryption.NewEncryptor(cfg.Encryption.MasterKeyPath)
	if err != nil {
		return fmt.Errorf("initializing encryptor: %w", err)
	}

	if decrypt {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading metadata from stdin: %w", err)
		}
		var meta encryption.Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("parsing encryption metadata: %w", err)
		}
		plaintext, err := enc.Decrypt(meta)
		if err != nil {
			return fmt.Errorf("decrypting value: %w", err)
		}
		fmt.Println(plaintext)
		return nil
	}

	if hint == "" {
		hint = encryption.KeyHint("OTHER", "", time.Now().UTC())
	}
	meta, err := enc.Encrypt(value, hint)
	if err != nil {
		return fmt.Errorf("encrypting value: %w", err)
	}
	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

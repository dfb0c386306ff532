// Package main provides the linkcheck command: re-validate every URL
// in an existing master CSV and rewrite it with fresh statuses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"toolbrowser/internal/config"
	"toolbrowser/internal/export"
	"toolbrowser/internal/logger"
	"toolbrowser/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	masterPath := flag.String("master", "", "Master CSV to re-validate (overrides config)")
	reportPath := flag.String("report", "", "Validation report output path (overrides config)")
	timeoutSec := flag.Int("timeout", 0, "Per-request timeout in seconds (overrides config)")
	workers := flag.Int("workers", 0, "Validation concurrency (overrides config)")

	flag.Parse()

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *masterPath != "" {
		cfg.Output.MasterCSV = *masterPath
	}

	if *reportPath != "" {
		cfg.Output.ValidationReport = *reportPath
	}

	if *timeoutSec > 0 {
		cfg.Validation.TimeoutSeconds = *timeoutSec
	}

	if *workers > 0 {
		cfg.Validation.MaxWorkers = *workers
	}

	log := logger.NewLogger(cfg.Logging.Level)

	table, err := export.ReadMasterCSV(cfg.Output.MasterCSV)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to load master CSV: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("🔗 Re-validating %d records from %s", len(table), cfg.Output.MasterCSV))

	orch, err := pipeline.New(cfg, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Invalid configuration: %v", err))
		os.Exit(1)
	}

	orch.SetProgress(func(completed, total int) {
		log.Debug("validating links", "completed", completed, "total", total)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()

	validated, report, err := orch.Validate(ctx, table)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Validation failed: %v", err))
		os.Exit(1)
	}

	if err := export.WriteMasterCSV(cfg.Output.MasterCSV, validated); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to rewrite master CSV: %v", err))
		os.Exit(1)
	}

	if err := export.WriteValidationReport(cfg.Output.ValidationReport, report); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write validation report: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Checked %d URLs in %v", len(report), time.Since(startTime)))
	log.Info(fmt.Sprintf("📄 Report: %s", cfg.Output.ValidationReport))
}

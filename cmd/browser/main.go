// Package main provides the browser pipeline command: import data
// files, merge them into a master table, optionally validate links,
// and export the results.
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
	"toolbrowser/internal/formatter"
	"toolbrowser/internal/logger"
	"toolbrowser/internal/models"
	"toolbrowser/internal/pipeline"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configPath := flag.String("config", "", "Path to YAML configuration file")
	validate := flag.Bool("validate", false, "Run link validation after import")
	masterPath := flag.String("master", "", "Master CSV output path (overrides config)")
	reportPath := flag.String("report", "", "Validation report output path (overrides config)")
	show := flag.Int("show", 20, "Number of records to print (0 disables the table)")
	search := flag.String("search", "", "Only print records whose name or description contains this text")
	category := flag.String("category", "", "Only print records in this category")
	access := flag.String("access", "", "Only print records with this access level (Internal, Public, Unknown)")

	flag.Parse()

	files := flag.Args()

	// Load configuration
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

	log := logger.NewLogger(cfg.Logging.Level)

	if len(files) == 0 {
		log.Error("Please provide at least one input file (.xlsx, .xls, .csv)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	orch, err := pipeline.New(cfg, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Invalid configuration: %v", err))
		os.Exit(1)
	}

	log.Info("🚀 Starting business tools pipeline")
	log.Info(fmt.Sprintf("📍 Inputs: %d file(s)", len(files)))

	// 2. Import & Merge
	// -----------------
	log.Info("Phase 1: Import (read, normalize, merge)...")

	startTime := time.Now()

	table, outcomes, err := orch.Process(files)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Import failed: %v", err))
		os.Exit(1)
	}

	skipped := 0

	for _, outcome := range outcomes {
		if !outcome.OK() {
			skipped++

			log.Warn(fmt.Sprintf("⚠️  Skipped %s: %s", outcome.Path, outcome.Error))

			continue
		}

		log.Info(fmt.Sprintf("✅ %s: %d rows, %d kept, %d dropped",
			outcome.Path, outcome.Rows, outcome.Kept, outcome.Dropped))
	}

	log.Info(fmt.Sprintf("Merged %d records from %d/%d files in %v",
		len(table), len(files)-skipped, len(files), time.Since(startTime)))

	// 3. Link Validation (optional)
	// -----------------------------
	if *validate && len(table) > 0 {
		log.Info("Phase 2: Link validation...")

		orch.SetProgress(func(completed, total int) {
			log.Debug("validating links", "completed", completed, "total", total)
		})

		// Interrupt stops dispatching new checks; completed statuses
		// are kept.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

		validated, report, err := orch.Validate(ctx, table)

		stop()

		if err != nil {
			log.Error(fmt.Sprintf("❌ Validation failed: %v", err))
			os.Exit(1)
		}

		table = validated

		if err := export.WriteValidationReport(cfg.Output.ValidationReport, report); err != nil {
			log.Error(fmt.Sprintf("❌ Failed to write validation report: %v", err))
			os.Exit(1)
		}

		log.Info(fmt.Sprintf("✅ Validated %d URLs, report: %s", len(report), cfg.Output.ValidationReport))
	}

	// 4. Export
	// ---------
	if err := export.WriteMasterCSV(cfg.Output.MasterCSV, table); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write master CSV: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("📄 Master table saved: %s (%d records)", cfg.Output.MasterCSV, len(table)))

	if *show != 0 {
		view := table.Select(models.Filter{
			Text:     *search,
			Category: *category,
			Access:   models.AccessLevel(*access),
		})

		fmt.Print(formatter.RenderTable(view, *show))
	}
}

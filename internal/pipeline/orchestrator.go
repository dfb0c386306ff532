// Package pipeline sequences ingestion, normalization, merging,
// classification, and link validation over a set of input files.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"

	"toolbrowser/internal/classifier"
	"toolbrowser/internal/config"
	"toolbrowser/internal/ingest"
	"toolbrowser/internal/logger"
	"toolbrowser/internal/merge"
	"toolbrowser/internal/models"
	"toolbrowser/internal/normalizer"
	"toolbrowser/internal/validator"
)

// ErrNoInputFiles is returned when Process is called without any paths.
var ErrNoInputFiles = errors.New("at least one input file is required")

// Orchestrator owns the master table for the duration of a run and
// hands it to callers per call; there is no ambient shared state.
type Orchestrator struct {
	reader     *ingest.Reader
	processor  *normalizer.Processor
	classifier *classifier.Classifier
	validator  *validator.Validator
	log        *logger.Logger
}

// New creates an orchestrator from the pipeline configuration.
func New(cfg *config.Config, log *logger.Logger) (*Orchestrator, error) {
	v, err := validator.NewValidator(cfg.Validation)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		reader:     ingest.NewReader(cfg.Ingest.Encodings),
		processor:  normalizer.NewProcessor(),
		classifier: classifier.New(cfg.Classifier),
		validator:  v,
		log:        log,
	}, nil
}

// SetProgress registers a validation progress callback.
func (o *Orchestrator) SetProgress(fn validator.ProgressFunc) {
	o.validator.SetProgress(fn)
}

// Process reads, normalizes, merges, and classifies the given files in
// order. Unreadable files are skipped with a recorded outcome, never
// fatal; the run always yields a best-effort master table.
func (o *Orchestrator) Process(paths []string) (models.MasterTable, []models.FileOutcome, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoInputFiles
	}

	merger := merge.NewMerger()
	outcomes := make([]models.FileOutcome, 0, len(paths))

	for _, path := range paths {
		outcome := models.FileOutcome{Path: path}

		sheets, err := o.reader.Read(path)
		if err != nil {
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)

			o.log.Warn("skipping unreadable file", "path", path, "error", err)

			continue
		}

		result := o.processor.ProcessSheets(sheets, filepath.Base(path))
		outcome.Rows = result.RawRows
		outcome.Kept = len(result.Records)
		outcome.Dropped = result.Dropped
		outcomes = append(outcomes, outcome)

		merger.Add(result.Records)

		o.log.Debug("processed file",
			"path", path,
			"rows", result.RawRows,
			"kept", len(result.Records),
			"dropped", result.Dropped,
		)
	}

	table := merger.Table()
	o.classifier.Apply(table)

	o.log.Info("merge complete",
		"records", len(table),
		"duplicates", merger.Duplicates(),
		"files", len(paths),
	)

	return table, outcomes, nil
}

// Validate runs one link-validation pass over an existing master table
// and returns the updated table with a flat per-URL report.
func (o *Orchestrator) Validate(ctx context.Context, table models.MasterTable) (models.MasterTable, []models.ValidationResult, error) {
	return o.validator.ValidateTable(ctx, table)
}

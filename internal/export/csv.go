// Package export persists the master table and validation report as
// flat delimited files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"toolbrowser/internal/models"
)

// Export errors.
var (
	ErrUnexpectedHeader = errors.New("unexpected master CSV header")
	ErrMalformedRow     = errors.New("malformed master CSV row")
)

// MasterColumns is the fixed column order of the persisted master table.
var MasterColumns = []string{
	"name",
	"description",
	"url",
	"category",
	"access_level",
	"notes",
	"source_file",
	"validation_status",
	"http_status",
	"validation_message",
	"last_validated",
}

// ReportColumns is the fixed column order of the validation report.
var ReportColumns = []string{"url", "status", "http_status", "message", "checked_at"}

// WriteMasterCSV persists the master table, creating parent directories
// as needed.
func WriteMasterCSV(path string, table models.MasterTable) error {
	rows := make([][]string, 0, len(table)+1)
	rows = append(rows, MasterColumns)

	for _, rec := range table {
		rows = append(rows, []string{
			rec.Name,
			rec.Description,
			rec.URL,
			rec.Category,
			string(rec.Access),
			rec.Notes,
			rec.SourceFile,
			string(rec.ValidationStatus),
			formatHTTPStatus(rec.HTTPStatus),
			rec.ValidationMessage,
			formatTime(rec.LastValidated),
		})
	}

	return writeRows(path, rows)
}

// ReadMasterCSV loads a previously persisted master table. Reloading a
// written file reproduces an equivalent table in the same row order.
func ReadMasterCSV(path string) (models.MasterTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse master CSV: %w", err)
	}

	if len(records) == 0 || !equalHeader(records[0]) {
		return nil, ErrUnexpectedHeader
	}

	table := make(models.MasterTable, 0, len(records)-1)

	for i, row := range records[1:] {
		if len(row) != len(MasterColumns) {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrMalformedRow, i+2, len(row))
		}

		httpStatus, err := parseHTTPStatus(row[8])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, i+2, err)
		}

		lastValidated, err := parseTime(row[10])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, i+2, err)
		}

		table = append(table, models.ToolRecord{
			Name:              row[0],
			Description:       row[1],
			URL:               row[2],
			Category:          row[3],
			Access:            models.AccessLevel(row[4]),
			Notes:             row[5],
			SourceFile:        row[6],
			ValidationStatus:  models.ValidationStatus(row[7]),
			HTTPStatus:        httpStatus,
			ValidationMessage: row[9],
			LastValidated:     lastValidated,
		})
	}

	return table, nil
}

// WriteValidationReport persists one row per validated URL.
func WriteValidationReport(path string, results []models.ValidationResult) error {
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, ReportColumns)

	for _, res := range results {
		rows = append(rows, []string{
			res.URL,
			string(res.Status),
			formatHTTPStatus(res.HTTPStatus),
			res.Message,
			formatTime(res.CheckedAt),
		})
	}

	return writeRows(path, rows)
}

func writeRows(path string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	writer.Flush()

	return writer.Error()
}

func equalHeader(header []string) bool {
	if len(header) != len(MasterColumns) {
		return false
	}

	for i, col := range MasterColumns {
		if header[i] != col {
			return false
		}
	}

	return true
}

func formatHTTPStatus(code int) string {
	if code == 0 {
		return ""
	}

	return strconv.Itoa(code)
}

func parseHTTPStatus(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, s)
}

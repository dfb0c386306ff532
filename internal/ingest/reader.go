// Package ingest reads tabular source files into raw row sets.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Ingestion errors.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnreadableFile    = errors.New("unable to read file")
	ErrUndecodableFile   = errors.New("unable to decode file with any configured encoding")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawSheet is one sheet (or the whole file, for delimited input) as raw
// header and data rows. Rows may be ragged.
type RawSheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// RowCount returns the number of data rows in the sheet.
func (s RawSheet) RowCount() int {
	return len(s.Rows)
}

// Reader reads supported input files into raw sheets.
type Reader struct {
	encodings []string
}

// NewReader creates a reader with the given CSV encoding fallback chain.
// An empty chain falls back to utf-8, latin-1, windows-1252.
func NewReader(encodings []string) *Reader {
	if len(encodings) == 0 {
		encodings = []string{"utf-8", "latin-1", "windows-1252"}
	}

	return &Reader{encodings: encodings}
}

// DetectFormat validates the file's extension and existence, returning
// the lowercased extension.
func (r *Reader) DetectFormat(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xls", ".csv":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Read loads all sheets of the given file. Delimited files yield a
// single sheet named after the file.
func (r *Reader) Read(path string) ([]RawSheet, error) {
	ext, err := r.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch ext {
	case ".csv":
		return r.readDelimited(path)
	default:
		return r.readWorkbook(path)
	}
}

func (r *Reader) readDelimited(path string) ([]RawSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	var lastErr error

	for _, name := range r.encodings {
		decoded, err := decodeBytes(data, name)
		if err != nil {
			lastErr = err

			continue
		}

		reader := csv.NewReader(bytes.NewReader(decoded))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		records, err := reader.ReadAll()
		if err != nil {
			lastErr = err

			continue
		}

		sheet := RawSheet{Name: filepath.Base(path)}
		if len(records) > 0 {
			sheet.Headers = records[0]
			sheet.Rows = records[1:]
		}

		return []RawSheet{sheet}, nil
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrUndecodableFile, path, lastErr)
}

func (r *Reader) readWorkbook(path string) ([]RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	var sheets []RawSheet

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %s: %v", ErrUnreadableFile, name, err)
		}

		if len(rows) == 0 {
			continue
		}

		sheets = append(sheets, RawSheet{
			Name:    name,
			Headers: rows[0],
			Rows:    rows[1:],
		})
	}

	return sheets, nil
}

// decodeBytes converts raw file bytes to UTF-8 text using the named
// encoding. The first successful decode in the chain wins.
func decodeBytes(data []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "utf-8":
		trimmed := bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(trimmed) {
			return nil, errors.New("input is not valid utf-8")
		}

		return trimmed, nil
	case "latin-1":
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Bytes(data)
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// Package merge combines per-file record lists into one master table,
// deduplicating by normalized URL.
package merge

import (
	"toolbrowser/internal/models"
	"toolbrowser/pkg/utils"
)

// Merger accumulates records across input files. The first occurrence
// of a normalized URL is kept wholesale; later occurrences are dropped
// without field merging. Records with empty URLs bypass deduplication.
type Merger struct {
	seen       map[string]bool
	records    models.MasterTable
	duplicates int
}

// NewMerger creates an empty merger.
func NewMerger() *Merger {
	return &Merger{
		seen: make(map[string]bool),
	}
}

// Add folds one file's records into the accumulating table, preserving
// first-seen order across the full input sequence.
func (m *Merger) Add(records []models.ToolRecord) {
	for _, rec := range records {
		key := utils.NormalizeURL(rec.URL)

		if key != "" {
			if m.seen[key] {
				m.duplicates++

				continue
			}

			m.seen[key] = true
		}

		m.records = append(m.records, rec)
	}
}

// Table returns the merged master table.
func (m *Merger) Table() models.MasterTable {
	return m.records
}

// Duplicates returns how many records were dropped as duplicate URLs.
func (m *Merger) Duplicates() int {
	return m.duplicates
}

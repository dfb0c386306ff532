package models

import "strings"

// MasterTable is the deduplicated, merged collection of tool records
// produced by one pipeline run. Row order is first-seen insertion order.
type MasterTable []ToolRecord

// Filter selects records by simple predicates. Zero-value fields are
// ignored.
type Filter struct {
	Text     string      // substring match on name or description
	Category string      // exact match
	Access   AccessLevel // exact match
}

// Select returns the records matching every set predicate, preserving
// table order.
func (t MasterTable) Select(f Filter) MasterTable {
	var out MasterTable

	text := strings.ToLower(f.Text)

	for _, rec := range t {
		if text != "" &&
			!strings.Contains(strings.ToLower(rec.Name), text) &&
			!strings.Contains(strings.ToLower(rec.Description), text) {
			continue
		}

		if f.Category != "" && rec.Category != f.Category {
			continue
		}

		if f.Access != "" && rec.Access != f.Access {
			continue
		}

		out = append(out, rec)
	}

	return out
}

// Categories returns the distinct categories present in the table, in
// first-seen order.
func (t MasterTable) Categories() []string {
	seen := make(map[string]bool)

	var out []string

	for _, rec := range t {
		if rec.Category == "" || seen[rec.Category] {
			continue
		}

		seen[rec.Category] = true
		out = append(out, rec.Category)
	}

	return out
}

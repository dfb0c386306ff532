// Package normalizer maps raw source rows onto canonical tool records.
package normalizer

import "strings"

// Canonical field names every source column is mapped onto.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldURL         = "url"
	FieldCategory    = "category"
	FieldAccess      = "access"
	FieldNotes       = "notes"
)

// CanonicalFields lists the canonical schema in fixed order.
var CanonicalFields = []string{
	FieldName,
	FieldDescription,
	FieldURL,
	FieldCategory,
	FieldAccess,
	FieldNotes,
}

// synonyms maps each accepted source column name (lowercased) to its
// canonical field. Matching is exact after trimming, not fuzzy.
var synonyms = map[string]string{}

func init() {
	accepted := map[string][]string{
		FieldName:        {"name", "tool_name", "tool", "title", "application", "service"},
		FieldDescription: {"description", "desc", "summary", "overview", "about"},
		FieldURL:         {"url", "link", "links", "website", "web_address", "site"},
		FieldCategory:    {"category", "type", "classification", "group", "tool_type"},
		FieldAccess:      {"access", "availability", "access_type", "public", "internal"},
		FieldNotes:       {"notes", "comments", "remarks", "additional_info"},
	}

	for canonical, names := range accepted {
		for _, n := range names {
			synonyms[n] = canonical
		}
	}
}

// ColumnMapping maps canonical field names to source column indexes.
// Canonical fields with no matching source column are absent.
type ColumnMapping map[string]int

// Has reports whether the canonical field was found in the source.
func (m ColumnMapping) Has(field string) bool {
	_, ok := m[field]

	return ok
}

// Value extracts the mapped cell for a canonical field from a raw row,
// or "" when the field is unmapped or the row is too short.
func (m ColumnMapping) Value(row []string, field string) string {
	idx, ok := m[field]
	if !ok || idx >= len(row) {
		return ""
	}

	return row[idx]
}

// MapColumns resolves raw column headers to canonical fields. Headers
// are matched case-insensitively after trimming; when several columns
// match the same canonical field, the leftmost one wins.
func MapColumns(headers []string) ColumnMapping {
	mapping := make(ColumnMapping)

	for i, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))

		canonical, ok := synonyms[key]
		if !ok {
			continue
		}

		if _, taken := mapping[canonical]; taken {
			continue
		}

		mapping[canonical] = i
	}

	return mapping
}

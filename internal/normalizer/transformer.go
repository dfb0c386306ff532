package normalizer

import (
	"toolbrowser/internal/models"
	"toolbrowser/pkg/utils"
)

// DefaultName is assigned to records whose source row had no name.
const DefaultName = "Unnamed Tool"

// Transformer builds canonical tool records from mapped raw rows.
type Transformer struct{}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform produces one ToolRecord from a raw row. The second return
// value is false when the row is empty across every canonical field and
// must be dropped.
func (t *Transformer) Transform(row []string, mapping ColumnMapping, sourceFile string) (models.ToolRecord, bool) {
	values := make(map[string]string, len(CanonicalFields))
	empty := true

	for _, field := range CanonicalFields {
		v := utils.CleanText(mapping.Value(row, field))
		values[field] = v

		if v != "" {
			empty = false
		}
	}

	if empty {
		return models.ToolRecord{}, false
	}

	rec := models.ToolRecord{
		Name:        values[FieldName],
		Description: values[FieldDescription],
		URL:         values[FieldURL],
		Category:    values[FieldCategory],
		Notes:       values[FieldNotes],
		AccessHint:  values[FieldAccess],
		SourceFile:  sourceFile,
	}

	if rec.Name == "" {
		rec.Name = DefaultName
	}

	// Empty URLs never go through network validation.
	if rec.URL == "" {
		rec.ValidationStatus = models.StatusEmpty
	}

	return rec, true
}

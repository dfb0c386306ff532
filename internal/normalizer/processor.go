package normalizer

import (
	"toolbrowser/internal/ingest"
	"toolbrowser/internal/models"
)

// FileResult summarizes normalization of one input file.
type FileResult struct {
	Records []models.ToolRecord
	RawRows int
	Dropped int
}

// Processor turns the raw sheets of one file into canonical records.
type Processor struct {
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		transformer: NewTransformer(),
	}
}

// ProcessSheets maps and normalizes every sheet of a file. Sheets are
// independent row sets: each gets its own column mapping, and their
// records are unioned in sheet order.
func (p *Processor) ProcessSheets(sheets []ingest.RawSheet, sourceFile string) FileResult {
	var result FileResult

	for _, sheet := range sheets {
		mapping := MapColumns(sheet.Headers)

		for _, row := range sheet.Rows {
			result.RawRows++

			rec, ok := p.transformer.Transform(row, mapping, sourceFile)
			if !ok {
				result.Dropped++

				continue
			}

			result.Records = append(result.Records, rec)
		}
	}

	return result
}

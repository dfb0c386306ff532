package models

import "time"

// ValidationResult is the outcome of checking a single URL. Results are
// folded back into the owning ToolRecord once a validation pass drains.
type ValidationResult struct {
	URL        string
	Status     ValidationStatus
	HTTPStatus int
	Message    string
	CheckedAt  time.Time
}

// FileOutcome records the result of processing one input file.
type FileOutcome struct {
	Path    string
	Rows    int // raw rows read across all sheets
	Kept    int // records produced after normalization
	Dropped int // rows discarded as entirely empty
	Error   string
}

// OK reports whether the file was processed without an ingestion error.
func (o FileOutcome) OK() bool {
	return o.Error == ""
}

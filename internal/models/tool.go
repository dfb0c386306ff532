// Package models defines data structures shared across the pipeline.
package models

import "time"

// AccessLevel classifies the intended audience of a tool.
type AccessLevel string

// Recognized access levels.
const (
	AccessInternal AccessLevel = "Internal"
	AccessPublic   AccessLevel = "Public"
	AccessUnknown  AccessLevel = "Unknown"
)

// ValidationStatus is the terminal state assigned to a record's URL.
type ValidationStatus string

// Terminal validation states. The zero value means the record has not
// been through a validation pass yet.
const (
	StatusPending         ValidationStatus = ""
	StatusEmpty           ValidationStatus = "empty"
	StatusInvalid         ValidationStatus = "invalid"
	StatusValid           ValidationStatus = "valid"
	StatusError           ValidationStatus = "error"
	StatusTimeout         ValidationStatus = "timeout"
	StatusConnectionError ValidationStatus = "connection_error"
)

// ToolRecord represents one business tool entry in the master table.
type ToolRecord struct {
	Name        string
	Description string
	URL         string
	Category    string
	Access      AccessLevel
	Notes       string
	SourceFile  string

	// AccessHint carries the raw value of a mapped access column, if the
	// source file had one. It feeds the classifier and is not persisted.
	AccessHint string

	// Validation fields, populated only after a validation pass.
	ValidationStatus  ValidationStatus
	HTTPStatus        int // 0 means no status code applies
	ValidationMessage string
	LastValidated     time.Time
}

// Validated reports whether the record has a terminal validation status.
func (r *ToolRecord) Validated() bool {
	return r.ValidationStatus != StatusPending
}

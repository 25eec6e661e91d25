package apperrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrImportInProgress = errors.New("an import is already running for this account")
	ErrInvalidStatus    = errors.New("invalid appointment status")
	ErrMappingConflict  = errors.New("source id already mapped to a different local id")
)

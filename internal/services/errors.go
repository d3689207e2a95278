package services

import "errors"

// Service errors
var (
	// ErrReadOnlySource is returned by record edits when the dataset comes
	// from a local file.
	ErrReadOnlySource = errors.New("record store is read-only")

	// ErrNoModel is returned when no prediction model was configured.
	ErrNoModel = errors.New("no prediction model loaded")
)

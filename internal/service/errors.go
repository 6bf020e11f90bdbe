package service

import "errors"

// Shared service error taxonomy. Validation and conflict errors never mutate
// state; forbidden is distinct from not-found so denials do not leak resource
// existence.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

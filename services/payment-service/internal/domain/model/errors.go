package model

import "errors"

var (
	// ErrIncompatibleSchema is returned when a message cannot be rendered in the requested variant.
	ErrIncompatibleSchema = errors.New("incompatible with schema")
	// ErrUnknownSchema is returned for a schema name outside the supported variants.
	ErrUnknownSchema = errors.New("unknown schema")
)

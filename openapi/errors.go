package openapi

import "errors"

// Decoding errors.
var (
	// ErrEmptyInput is returned when a decoder receives no content.
	ErrEmptyInput = errors.New("openapi: empty input")

	// ErrInvalidJSON is returned by DecodeValue when the input is not
	// strict JSON.
	ErrInvalidJSON = errors.New("openapi: invalid JSON")

	// ErrInvalidSchema is returned when a schema position holds neither a
	// mapping nor a boolean.
	ErrInvalidSchema = errors.New("openapi: schema must be an object or a boolean")

	// ErrNotOpenAPI is returned by ParseDocument when the openapi version
	// field is missing.
	ErrNotOpenAPI = errors.New("openapi: missing openapi version field")
)

package apidocs

import "errors"

// Lookup and query errors. Each maps to an HTTP status in statusOf.
var (
	// ErrSchemaNotFound is returned when no component schema has the
	// requested name.
	ErrSchemaNotFound = errors.New("apidocs: schema not found")

	// ErrOperationNotFound is returned when no operation has the requested
	// operationId.
	ErrOperationNotFound = errors.New("apidocs: operation not found")

	// ErrBodyNotFound is returned when the operation has no request body or
	// no response for the requested status.
	ErrBodyNotFound = errors.New("apidocs: body not found")

	// ErrMediaTypeNotFound is returned when the body does not declare the
	// requested media type.
	ErrMediaTypeNotFound = errors.New("apidocs: media type not found")

	// ErrInvalidQuery is returned for malformed query parameters.
	ErrInvalidQuery = errors.New("apidocs: invalid query parameter")
)

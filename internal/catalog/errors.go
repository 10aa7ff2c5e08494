package catalog

import "github.com/zeebo/errs"

var (
	// InvalidKindError is returned for a kind outside PACKAGE, PROCEDURE, FUNCTION.
	InvalidKindError = errs.Class("invalid object kind")
	// InvalidNameError is returned for an empty object name.
	InvalidNameError = errs.Class("invalid object name")
	// NotFoundError is returned when a named object does not exist.
	NotFoundError = errs.Class("object not found")
	// QueryError wraps failures of catalog queries.
	QueryError = errs.Class("catalog query")
	// MetadataError wraps failures of the DDL extraction call.
	MetadataError = errs.Class("metadata")
)

package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Extractor fetches object definitions.
type Extractor struct {
	session Session
}

// NewExtractor creates an Extractor over session.
func NewExtractor(session Session) *Extractor {
	return &Extractor{session: session}
}

// Exists reports whether an object of kind named name exists.
func (e *Extractor) Exists(ctx context.Context, kind Kind, name string) (bool, error) {
	n, err := e.session.CountMatching(ctx, kind, name)
	if err != nil {
		return false, QueryError.Wrap(fmt.Errorf("counting %s %s: %w", kind, name, err))
	}
	return n > 0, nil
}

// FetchDDL returns the full definition of one object. The text is fully
// materialized before returning.
func (e *Extractor) FetchDDL(ctx context.Context, kind Kind, name string) (string, error) {
	ddl, err := e.session.GetDDL(ctx, kind, name)
	switch {
	case NotFoundError.Has(err):
		return "", err
	case errors.Is(err, ErrNoDDL):
		return "", MetadataError.New("no ddl found for %s %s", kind, name)
	case err != nil:
		return "", MetadataError.Wrap(fmt.Errorf("fetching ddl for %s %s: %w", kind, name, err))
	case ddl == "":
		return "", MetadataError.New("empty ddl for %s %s", kind, name)
	}
	return ddl, nil
}

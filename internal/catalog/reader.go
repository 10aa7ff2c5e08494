package catalog

import (
	"context"
	"fmt"
)

// Reader enumerates objects of a kind.
type Reader struct {
	session Session
}

// NewReader creates a Reader over session.
func NewReader(session Session) *Reader {
	return &Reader{session: session}
}

// ListObjects returns the names of every object of kind owned by the
// current schema. An empty result is not an error.
func (r *Reader) ListObjects(ctx context.Context, kind Kind) ([]string, error) {
	names, err := r.session.ListObjects(ctx, kind)
	if err != nil {
		return nil, QueryError.Wrap(fmt.Errorf("listing %s objects: %w", kind, err))
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

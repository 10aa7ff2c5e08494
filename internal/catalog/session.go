package catalog

import (
	"context"
	"errors"
)

// ErrNoDDL is returned by a Session when the metadata call yields no row.
var ErrNoDDL = errors.New("no ddl returned")

// Session is the database capability the catalog needs. Implementations
// must bind kind and name as query parameters.
type Session interface {
	ListObjects(ctx context.Context, kind Kind) ([]string, error)
	CountMatching(ctx context.Context, kind Kind, name string) (int, error)
	GetDDL(ctx context.Context, kind Kind, name string) (string, error)
}

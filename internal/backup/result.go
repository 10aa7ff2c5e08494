package backup

import (
	"time"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/snapshot"
)

// Failure is one object that could not be backed up.
type Failure struct {
	Kind catalog.Kind
	Name string
	Err  error
}

// BulkResult summarizes a backup of every object of a kind.
type BulkResult struct {
	RunID     string
	Kind      catalog.Kind
	Found     int
	BackedUp  int
	Locations []snapshot.Location
	Failures  []Failure
	Pruned    int
	Duration  time.Duration
}

// SingleResult summarizes a backup of one named object.
type SingleResult struct {
	RunID    string
	Kind     catalog.Kind
	Name     string
	Location snapshot.Location
	Pruned   int
	Duration time.Duration
}

// Request mirrors the optional kind/name pair a caller may supply.
type Request struct {
	Kind string
	Name string
}

// Result carries exactly one of Bulk or Single.
type Result struct {
	Bulk   *BulkResult
	Single *SingleResult
}

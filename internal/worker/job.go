package worker

import (
	"time"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
)

// Job is one scheduled bulk backup submitted to the worker.
type Job struct {
	Name      string
	Kind      catalog.Kind
	Scheduled time.Time
}

// Package worker runs scheduled bulk backups one at a time.
package worker

import (
	"context"

	"github.com/raoulx24/ddl-archiver/internal/backup"
	"github.com/raoulx24/ddl-archiver/internal/logging"
	"github.com/raoulx24/ddl-archiver/internal/mailbox"
)

// Backupper is the part of the orchestrator the worker drives.
type Backupper interface {
	BackupAll(ctx context.Context, kind string) (backup.BulkResult, error)
}

// Worker takes jobs from the mailbox and backs up every object of the job's
// kind.
type Worker struct {
	backup   Backupper
	log      logging.Logger
	mb       *mailbox.Mailbox[Job]
	afterRun func()
}

// New creates a worker. afterRun, if set, is called after every job, e.g.
// to flush metrics.
func New(b Backupper, log logging.Logger, mb *mailbox.Mailbox[Job], afterRun func()) *Worker {
	return &Worker{backup: b, log: log, mb: mb, afterRun: afterRun}
}

// Handle runs one job.
func (w *Worker) Handle(ctx context.Context, job Job) (backup.BulkResult, error) {
	w.log.Debug("entering Worker.Handle()", "job", job.Name)
	res, err := w.backup.BackupAll(ctx, string(job.Kind))
	if err != nil {
		w.log.Error("worker: scheduled backup failed", "job", job.Name, "kind", job.Kind, "error", err)
	} else {
		w.log.Info("worker: scheduled backup done",
			"job", job.Name,
			"kind", job.Kind,
			"backed_up", res.BackedUp,
			"failed", len(res.Failures),
			"pruned", res.Pruned,
		)
	}
	if w.afterRun != nil {
		w.afterRun()
	}
	return res, err
}

package worker

import "context"

// Start pulls jobs from the mailbox until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")
	for {
		job, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker stopped")
			return
		}
		_, _ = w.Handle(ctx, job)
	}
}

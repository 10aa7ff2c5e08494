// Package backup composes the catalog, snapshot and retention packages into
// the bulk and single-object backup workflows.
package backup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/errs"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/fs"
	"github.com/raoulx24/ddl-archiver/internal/logging"
	"github.com/raoulx24/ddl-archiver/internal/metrics"
	"github.com/raoulx24/ddl-archiver/internal/retention"
	"github.com/raoulx24/ddl-archiver/internal/snapshot"
)

// MissingKindError is returned when a name is given without a kind.
var MissingKindError = errs.Class("missing object kind")

// Settings are the hot-reloadable parts of an Orchestrator.
type Settings struct {
	Root      string
	Retention retention.Threshold
}

// Orchestrator runs backups one at a time against a single session.
type Orchestrator struct {
	run sync.Mutex // one in-flight run, so one in-flight query

	mu       sync.RWMutex
	settings Settings
	state    State

	reader    *catalog.Reader
	extractor *catalog.Extractor
	writer    *snapshot.Writer
	sweeper   *retention.Sweeper
	metrics   *metrics.Collector
	log       logging.Logger
	now       func() time.Time
}

type Option func(*options)

type options struct {
	fs      fs.FS
	metrics *metrics.Collector
	now     func() time.Time
}

// WithFS replaces the OS filesystem.
func WithFS(f fs.FS) Option { return func(o *options) { o.fs = f } }

// WithMetrics records run outcomes in c.
func WithMetrics(c *metrics.Collector) Option { return func(o *options) { o.metrics = c } }

// WithClock replaces time.Now for snapshot timestamps and folder ages.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// New creates an orchestrator over session.
func New(session catalog.Session, settings Settings, log logging.Logger, opts ...Option) *Orchestrator {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = fs.New()
	}

	return &Orchestrator{
		settings:  settings,
		reader:    catalog.NewReader(session),
		extractor: catalog.NewExtractor(session),
		writer:    snapshot.NewWriter(o.fs, log),
		sweeper:   retention.New(o.fs, log).WithClock(o.now),
		metrics:   o.metrics,
		log:       log,
		now:       o.now,
	}
}

// State reports the current phase.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Settings returns the current root and retention.
func (o *Orchestrator) Settings() Settings {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.settings
}

// UpdateSettings hot-reloads root and retention; a running backup keeps the
// settings it started with.
func (o *Orchestrator) UpdateSettings(s Settings) {
	o.mu.Lock()
	o.settings = s
	o.mu.Unlock()
	o.log.Info("backup settings updated", "root", s.Root, "retention", s.Retention)
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	prev := o.state
	o.state = s
	o.mu.Unlock()
	o.log.Debug("state transition", "from", prev, "to", s)
}

// Backup dispatches a request the way the interactive tool did: a name
// without a kind is rejected, a kind with a name backs up that object, a kind
// alone backs up every object of the kind.
func (o *Orchestrator) Backup(ctx context.Context, req Request) (Result, error) {
	if req.Kind == "" {
		return Result{}, CheckRequest(req)
	}
	if req.Name != "" {
		res, err := o.BackupOne(ctx, req.Kind, req.Name)
		return Result{Single: &res}, err
	}
	res, err := o.BackupAll(ctx, req.Kind)
	return Result{Bulk: &res}, err
}

// CheckRequest validates a request without touching the database.
func CheckRequest(req Request) error {
	if req.Kind == "" {
		if req.Name != "" {
			return MissingKindError.New("object %q given without a kind", req.Name)
		}
		return catalog.InvalidKindError.New("no object kind given")
	}
	if _, err := catalog.ParseKind(req.Kind); err != nil {
		return err
	}
	if req.Name != "" {
		if _, err := catalog.NormalizeName(req.Name); err != nil {
			return err
		}
	}
	return nil
}

// ListObjects returns the names of every object of kind.
func (o *Orchestrator) ListObjects(ctx context.Context, kind string) ([]string, error) {
	k, err := catalog.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	o.run.Lock()
	defer o.run.Unlock()
	return o.reader.ListObjects(ctx, k)
}

// BackupAll snapshots every object of kind, then sweeps the kind's backup
// root. Per-object failures are collected in the result and do not stop the
// run; validation and enumeration failures do.
func (o *Orchestrator) BackupAll(ctx context.Context, kind string) (BulkResult, error) {
	o.run.Lock()
	defer o.run.Unlock()

	res := BulkResult{RunID: uuid.NewString()}
	start := o.now()

	o.setState(ValidatingInput)
	k, err := catalog.ParseKind(kind)
	if err != nil {
		o.setState(Aborted)
		o.log.Error("backup aborted", "run", res.RunID, "kind", kind, "error", err)
		return res, err
	}
	res.Kind = k

	settings := o.Settings()
	log := o.log.With("run", res.RunID, "kind", k)

	o.setState(BulkBackup)
	names, err := o.reader.ListObjects(ctx, k)
	if err != nil {
		o.setState(Idle)
		log.Error("cannot enumerate objects", "error", err)
		return res, err
	}
	res.Found = len(names)
	if len(names) == 0 {
		o.setState(Idle)
		log.Info("no objects found")
		return res, nil
	}

	ts := o.now()
	var runErr error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			runErr = err
			log.Warn("backup interrupted", "remaining", len(names)-res.BackedUp-len(res.Failures), "error", err)
			break
		}

		loc, err := o.backupObject(ctx, settings.Root, k, name, ts)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Kind: k, Name: name, Err: err})
			o.metrics.RecordFailure(string(k), reason(err))
			log.Error("object backup failed", "name", name, "path", loc.File(), "error", err)
			continue
		}
		res.BackedUp++
		res.Locations = append(res.Locations, loc)
		o.metrics.RecordBackup(string(k))
		log.Info("object backed up", "name", name, "path", loc.File())
	}

	o.setState(Sweeping)
	pruned, _ := o.sweeper.Sweep(context.WithoutCancel(ctx), snapshot.KindDir(settings.Root, k), settings.Retention)
	res.Pruned = pruned
	o.metrics.RecordPruned(string(k), pruned)

	res.Duration = o.now().Sub(start)
	o.metrics.ObserveRun("bulk", string(k), res.Duration, res.BackedUp)
	o.setState(Idle)

	log.Info("backup finished",
		"found", res.Found,
		"backed_up", res.BackedUp,
		"failed", len(res.Failures),
		"pruned", res.Pruned,
	)
	return res, runErr
}

// BackupOne snapshots a single object, then sweeps that object's folder.
// An unknown object fails with catalog.NotFoundError before anything is
// written.
func (o *Orchestrator) BackupOne(ctx context.Context, kind, name string) (SingleResult, error) {
	o.run.Lock()
	defer o.run.Unlock()

	res := SingleResult{RunID: uuid.NewString()}
	start := o.now()

	o.setState(ValidatingInput)
	k, err := catalog.ParseKind(kind)
	if err != nil {
		o.setState(Aborted)
		o.log.Error("backup aborted", "run", res.RunID, "kind", kind, "name", name, "error", err)
		return res, err
	}
	n, err := catalog.NormalizeName(name)
	if err != nil {
		o.setState(Aborted)
		o.log.Error("backup aborted", "run", res.RunID, "kind", k, "error", err)
		return res, err
	}
	res.Kind, res.Name = k, n

	settings := o.Settings()
	log := o.log.With("run", res.RunID, "kind", k, "name", n)

	o.setState(SingleBackup)
	exists, err := o.extractor.Exists(ctx, k, n)
	if err != nil {
		o.setState(Idle)
		log.Error("cannot check object", "error", err)
		return res, err
	}
	if !exists {
		o.setState(Idle)
		err := catalog.NotFoundError.New("%s %s does not exist", k.Lower(), n)
		log.Error("object does not exist", "error", err)
		return res, err
	}

	loc, backupErr := o.backupObject(ctx, settings.Root, k, n, o.now())
	if backupErr != nil {
		o.metrics.RecordFailure(string(k), reason(backupErr))
		log.Error("object backup failed", "path", loc.File(), "error", backupErr)
	} else {
		res.Location = loc
		o.metrics.RecordBackup(string(k))
		log.Info("object backed up", "path", loc.File())
	}

	o.setState(Sweeping)
	pruned, _ := o.sweeper.SweepObject(context.WithoutCancel(ctx), snapshot.ObjectDir(settings.Root, k, n), settings.Retention)
	res.Pruned = pruned
	o.metrics.RecordPruned(string(k), pruned)

	res.Duration = o.now().Sub(start)
	backedUp := 0
	if backupErr == nil {
		backedUp = 1
	}
	o.metrics.ObserveRun("single", string(k), res.Duration, backedUp)
	o.setState(Idle)
	return res, backupErr
}

// backupObject fetches and writes one snapshot. The returned location is
// set even on failure so callers can log the intended path.
func (o *Orchestrator) backupObject(ctx context.Context, root string, kind catalog.Kind, name string, ts time.Time) (snapshot.Location, error) {
	loc := snapshot.Location{Root: root, Kind: kind, Name: name, Timestamp: ts}

	ddl, err := o.extractor.FetchDDL(ctx, kind, name)
	if err != nil {
		return loc, err
	}
	written, err := o.writer.Write(ctx, root, kind, name, ts, ddl)
	if err != nil {
		return loc, err
	}
	return written, nil
}

// reason maps an error to a metrics label.
func reason(err error) string {
	switch {
	case catalog.NotFoundError.Has(err):
		return "not_found"
	case catalog.MetadataError.Has(err):
		return "metadata"
	case snapshot.IoError.Has(err):
		return "io"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}

package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/raoulx24/ddl-archiver/internal/backup"
	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/config"
	"github.com/raoulx24/ddl-archiver/internal/logging"
	"github.com/raoulx24/ddl-archiver/internal/mailbox"
)

type fakeBackupper struct {
	mu      sync.Mutex
	kinds   []string
	err     error
	active  int
	overlap bool
	done    chan struct{}
}

func (f *fakeBackupper) BackupAll(ctx context.Context, kind string) (backup.BulkResult, error) {
	f.mu.Lock()
	f.active++
	if f.active > 1 {
		f.overlap = true
	}
	f.kinds = append(f.kinds, kind)
	f.mu.Unlock()

	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.active--
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return backup.BulkResult{Kind: catalog.Kind(kind), BackedUp: 1}, f.err
}

func TestHandle(t *testing.T) {
	log := logging.Wrap(zaptest.NewLogger(t))
	fb := &fakeBackupper{}
	flushed := 0
	w := New(fb, log, mailbox.New[Job](), func() { flushed++ })

	res, err := w.Handle(context.Background(), Job{Name: "nightly", Kind: catalog.Package})
	require.NoError(t, err)
	assert.Equal(t, 1, res.BackedUp)
	assert.Equal(t, []string{"PACKAGE"}, fb.kinds)
	assert.Equal(t, 1, flushed)

	fb.err = errors.New("catalog down")
	_, err = w.Handle(context.Background(), Job{Name: "nightly", Kind: catalog.Package})
	assert.Error(t, err)
	assert.Equal(t, 2, flushed)
}

func TestStartRunsJobsSequentially(t *testing.T) {
	log := logging.Wrap(zaptest.NewLogger(t))
	fb := &fakeBackupper{done: make(chan struct{}, 10)}
	mb := mailbox.New[Job]()
	w := New(fb, log, mb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	for _, k := range []catalog.Kind{catalog.Package, catalog.Function} {
		mb.Put(Job{Name: string(k), Kind: k})
		select {
		case <-fb.done:
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	assert.Equal(t, []string{"PACKAGE", "FUNCTION"}, fb.kinds)
	assert.False(t, fb.overlap)
}

func TestSchedulerApply(t *testing.T) {
	mb := mailbox.New[Job]()
	s := NewScheduler(mb, logging.Nop())

	err := s.Apply([]config.JobConfig{
		{Name: "pkgs", Cron: "0 2 * * *", Kind: "package"},
		{Name: "fns", Cron: "@every 1h", Kind: "FUNCTION"},
	})
	require.NoError(t, err)
	jobs := s.Jobs()
	sort.Strings(jobs)
	assert.Equal(t, []string{"fns", "pkgs"}, jobs)

	err = s.Apply([]config.JobConfig{{Name: "bad", Cron: "0 2 * * *", Kind: "TABLE"}})
	assert.True(t, catalog.InvalidKindError.Has(err))
	assert.Len(t, s.Jobs(), 2, "a rejected schedule leaves the old one in place")

	err = s.Apply([]config.JobConfig{{Name: "bad", Cron: "whenever", Kind: "PACKAGE"}})
	assert.Error(t, err)

	require.NoError(t, s.Apply([]config.JobConfig{{Name: "procs", Cron: "@every 1h", Kind: "procedure"}}))
	assert.Equal(t, []string{"procs"}, s.Jobs())

	s.Start()
	defer s.Stop()
	next, ok := s.Next("procs")
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, time.Minute)

	_, ok = s.Next("pkgs")
	assert.False(t, ok)
}

func TestSchedulerFire(t *testing.T) {
	mb := mailbox.New[Job]()
	s := NewScheduler(mb, logging.Nop())
	at := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	s.fire(Job{Name: "pkgs", Kind: catalog.Package})
	s.fire(Job{Name: "fns", Kind: catalog.Function})

	job := mb.TryTake()
	require.NotNil(t, job)
	assert.Equal(t, "fns", job.Name)
	assert.Equal(t, at, job.Scheduled)
	assert.Nil(t, mb.TryTake())
}

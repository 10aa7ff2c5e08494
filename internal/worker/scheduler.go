package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/config"
	"github.com/raoulx24/ddl-archiver/internal/logging"
	"github.com/raoulx24/ddl-archiver/internal/mailbox"
)

// Scheduler fires configured jobs on their cron schedule by putting them
// into the worker's mailbox.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID
	mb      *mailbox.Mailbox[Job]
	log     logging.Logger
	running bool
	now     func() time.Time
}

func NewScheduler(mb *mailbox.Mailbox[Job], log logging.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		entries: map[string]cron.EntryID{},
		mb:      mb,
		log:     log,
		now:     time.Now,
	}
}

// Apply replaces every scheduled job. Nothing changes if any job is invalid.
func (s *Scheduler) Apply(jobs []config.JobConfig) error {
	type parsed struct {
		job   Job
		sched cron.Schedule
	}
	var next []parsed
	for _, jc := range jobs {
		kind, err := catalog.ParseKind(jc.Kind)
		if err != nil {
			return fmt.Errorf("job %q: %w", jc.Name, err)
		}
		sched, err := cron.ParseStandard(jc.Cron)
		if err != nil {
			return fmt.Errorf("job %q: invalid cron schedule %q: %w", jc.Name, jc.Cron, err)
		}
		next = append(next, parsed{job: Job{Name: jc.Name, Kind: kind}, sched: sched})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for name, id := range s.entries {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
	for _, p := range next {
		job := p.job
		s.entries[job.Name] = s.cron.Schedule(p.sched, cron.FuncJob(func() { s.fire(job) }))
	}

	s.log.Info("schedule applied", "jobs", len(next))
	return nil
}

func (s *Scheduler) fire(job Job) {
	job.Scheduled = s.now()
	if s.mb.Put(job) {
		s.log.Warn("scheduler: pending job superseded", "job", job.Name)
	}
	s.log.Debug("scheduler: job queued", "job", job.Name, "kind", job.Kind)
}

// Start begins firing jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", "jobs", len(s.entries))
}

// Stop stops the scheduler and waits for any firing to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.log.Info("scheduler stopped")
}

// Next returns the next firing time of a job, if scheduled.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}, false
	}
	e := s.cron.Entry(id)
	if !e.Valid() {
		return time.Time{}, false
	}
	return e.Next, true
}

// Jobs returns the names of the scheduled jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names
}

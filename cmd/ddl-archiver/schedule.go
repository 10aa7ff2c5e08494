package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/ddl-archiver/internal/config"
	"github.com/raoulx24/ddl-archiver/internal/mailbox"
	"github.com/raoulx24/ddl-archiver/internal/watcher"
	"github.com/raoulx24/ddl-archiver/internal/worker"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the configured backup jobs on their cron schedules",
	Long: `Runs until interrupted. Jobs come from the schedule.jobs section of the
config file. SIGHUP, or a change to the file when configReload.enabled is
set, reloads the schedule, the backup root and the retention.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if len(a.cfg.Schedule.Jobs) == 0 {
			return errors.New("no jobs in schedule.jobs")
		}
		if err := a.connect(ctx); err != nil {
			return err
		}

		mb := mailbox.New[worker.Job]()
		w := worker.New(a.orch, a.log, mb, a.flushMetrics)
		sched := worker.NewScheduler(mb, a.log)
		if err := sched.Apply(a.cfg.Schedule.Jobs); err != nil {
			return err
		}

		reload := func(cfg *config.Config) {
			applyOverrides(cmd, cfg)
			if err := sched.Apply(cfg.Schedule.Jobs); err != nil {
				a.log.Error("schedule reload rejected", "error", err)
				return
			}
			a.orch.UpdateSettings(a.settings(cfg))
		}

		wait := startWorker(ctx, w)
		sched.Start()
		// runs before a.close: no job may still hold the session
		defer func() {
			cancel()
			sched.Stop()
			wait()
		}()

		if a.cfg.ConfigReload.Enabled {
			cw := watcher.New(cfgFile, a.cfg.ConfigReload, a.log, reload)
			go func() {
				if err := cw.Start(ctx); err != nil {
					a.log.Error("config watcher stopped", "error", err)
				}
			}()
		}

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		for {
			select {
			case <-ctx.Done():
				a.log.Info("shutting down")
				return nil
			case <-hup:
				cfg, err := config.Load(cfgFile)
				if err != nil {
					a.log.Error("config reload failed", "error", err)
					continue
				}
				reload(cfg)
				a.log.Info("config reloaded")
			}
		}
	},
}


// startWorker runs w until ctx is done. The returned func blocks until the
// job in flight, if any, has finished.
func startWorker(ctx context.Context, w *worker.Worker) (wait func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Start(ctx)
	}()
	return wg.Wait
}

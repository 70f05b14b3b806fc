// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/mmynk/healthcoach/internal/models"
)

// InactivityThreshold is how old a user's latest sample must be for the
// user to count as inactive.
const InactivityThreshold = models.InactivityDays * 24 * time.Hour

// Store is the persistence housekeeping needs.
type Store interface {
	PurgeResetTokens(ctx context.Context, now int64) (int64, error)
	CountInactiveUsers(ctx context.Context, cutoff string) (int, error)
}

// Sweeper drops idle in-memory state, such as rate limit buckets.
type Sweeper interface {
	Cleanup() int
}

// Report summarizes one housekeeping pass.
type Report struct {
	PurgedTokens  int64
	InactiveUsers int
	SweptKeys     int
}

// Housekeeping purges dead reset tokens and tracks inactive users.
type Housekeeping struct {
	store    Store
	sweepers []Sweeper
	logger   *slog.Logger
	now      func() time.Time

	purged   prometheus.Counter
	inactive prometheus.Gauge
	runs     *prometheus.CounterVec
}

// NewHousekeeping creates the job and registers its collectors with reg.
func NewHousekeeping(store Store, logger *slog.Logger, reg prometheus.Registerer, sweepers ...Sweeper) *Housekeeping {
	h := &Housekeeping{
		store:    store,
		sweepers: sweepers,
		logger:   logger,
		now:      time.Now,
		purged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "healthcoach",
			Subsystem: "housekeeping",
			Name:      "purged_reset_tokens_total",
			Help:      "Reset tokens removed because they were used or expired.",
		}),
		inactive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "healthcoach",
			Subsystem: "housekeeping",
			Name:      "inactive_users",
			Help:      "Users whose latest record is older than the inactivity threshold.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthcoach",
			Subsystem: "housekeeping",
			Name:      "runs_total",
			Help:      "Housekeeping runs by outcome.",
		}, []string{"success"}),
	}
	reg.MustRegister(h.purged, h.inactive, h.runs)
	return h
}

// Run performs one pass.
func (h *Housekeeping) Run(ctx context.Context) (Report, error) {
	now := h.now()
	var report Report

	purged, err := h.store.PurgeResetTokens(ctx, now.Unix())
	if err != nil {
		h.runs.WithLabelValues("false").Inc()
		return report, fmt.Errorf("purge reset tokens: %w", err)
	}
	report.PurgedTokens = purged
	h.purged.Add(float64(purged))

	cutoff := now.Add(-InactivityThreshold).UTC().Format(models.DateLayout)
	inactive, err := h.store.CountInactiveUsers(ctx, cutoff)
	if err != nil {
		h.runs.WithLabelValues("false").Inc()
		return report, fmt.Errorf("count inactive users: %w", err)
	}
	report.InactiveUsers = inactive
	h.inactive.Set(float64(inactive))

	for _, s := range h.sweepers {
		report.SweptKeys += s.Cleanup()
	}

	h.runs.WithLabelValues("true").Inc()
	return report, nil
}

// Scheduler runs housekeeping on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// Schedule registers job to run on spec (standard 5-field cron or a
// descriptor such as "@hourly"). Each run gets timeout.
func Schedule(spec string, job *Housekeeping, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		report, err := job.Run(ctx)
		if err != nil {
			logger.Error("Housekeeping failed", "error", err)
			return
		}
		logger.Info("Housekeeping done",
			"purged_tokens", report.PurgedTokens,
			"inactive_users", report.InactiveUsers,
			"swept_keys", report.SweptKeys,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid housekeeping schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Housekeeping scheduler started", "entries", len(s.cron.Entries()))
}

// Stop prevents new runs and waits for a running one to finish or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Housekeeping still running at shutdown")
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/model"
)

// generationTime is the JST wall-clock time the daily run fires at.
const generationTime = "00:00"

type dateGenerator interface {
	GenerateForDate(ctx context.Context, date clock.Date) (GenerationResult, error)
}

type runStore interface {
	Create(ctx context.Context, run *model.SchedulerRun) error
	ListRecent(ctx context.Context, limit int) ([]model.SchedulerRun, error)
}

// RunNotifier is told about every finished run.
type RunNotifier interface {
	NotifyRun(ctx context.Context, run model.SchedulerRun) error
}

type SchedulerStatus struct {
	IsRunning     bool                `json:"is_running"`
	CurrentTime   string              `json:"current_time"`
	NextExecution string              `json:"next_execution"`
	NextRunAt     *time.Time          `json:"next_run_at,omitempty"`
	LastRun       *model.SchedulerRun `json:"last_run,omitempty"`
}

// DailyScheduler fires instance generation at midnight Asia/Tokyo.
// A failed run is recorded and logged; the trigger stays registered.
type DailyScheduler struct {
	generator dateGenerator
	runs      runStore
	notifier  RunNotifier
	clock     *clock.JST
	log       *zap.Logger

	spec     string
	schedule cron.Schedule

	mu      sync.Mutex
	cron    *cron.Cron
	entry   cron.EntryID
	running bool
	lastRun *model.SchedulerRun
}

var secondsParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// NewDailyScheduler builds an idle scheduler. notifier may be nil.
func NewDailyScheduler(generator dateGenerator, runs runStore, notifier RunNotifier, clk *clock.JST, log *zap.Logger) (*DailyScheduler, error) {
	spec, err := buildDailySpec(generationTime)
	if err != nil {
		return nil, err
	}
	schedule, err := secondsParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}
	return &DailyScheduler{
		generator: generator,
		runs:      runs,
		notifier:  notifier,
		clock:     clk,
		log:       log.Named("scheduler"),
		spec:      spec,
		schedule:  schedule,
	}, nil
}

// Start registers the midnight trigger. Calling it while running is a no-op.
func (s *DailyScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	cronLog := cron.PrintfLogger(zap.NewStdLog(s.log.Named("cron")))
	s.cron = cron.New(
		cron.WithLocation(s.clock.Location()),
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cronLog)),
		cron.WithLogger(cronLog),
	)
	s.entry = s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		_, _ = s.run(context.Background(), model.TriggerScheduled)
	}))
	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", zap.String("spec", s.spec), zap.String("zone", clock.TokyoZone))
}

// Stop removes the trigger and waits for an in-flight run. No-op when idle.
func (s *DailyScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	c := s.cron
	c.Remove(s.entry)
	s.cron = nil
	s.running = false
	s.mu.Unlock()

	<-c.Stop().Done()
	s.log.Info("scheduler stopped")
}

// ExecuteManually runs generation for JST today once, in either state.
func (s *DailyScheduler) ExecuteManually(ctx context.Context) (model.SchedulerRun, error) {
	return s.run(ctx, model.TriggerManual)
}

func (s *DailyScheduler) Status() SchedulerStatus {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{
		IsRunning:     s.running,
		CurrentTime:   s.clock.Format(now),
		NextExecution: "not scheduled",
	}
	if s.running {
		next := s.schedule.Next(now)
		status.NextRunAt = &next
		status.NextExecution = fmt.Sprintf("daily at %s JST (%s), next %s",
			generationTime, clock.TokyoZone, s.clock.Format(next))
	}
	if s.lastRun != nil {
		last := *s.lastRun
		status.LastRun = &last
	}
	return status
}

func (s *DailyScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *DailyScheduler) RecentRuns(ctx context.Context, limit int) ([]model.SchedulerRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.runs.ListRecent(ctx, limit)
}

func (s *DailyScheduler) run(ctx context.Context, trigger string) (model.SchedulerRun, error) {
	started := s.clock.Now()
	date := clock.DateOf(started)
	run := model.SchedulerRun{
		ID:         uuid.NewString(),
		Trigger:    trigger,
		TargetDate: date.String(),
		StartedAt:  started.UTC(),
	}

	result, err := s.generator.GenerateForDate(ctx, date)
	run.FinishedAt = s.clock.Now().UTC()
	if err != nil {
		run.Status = model.RunStatusError
		run.Error = err.Error()
		s.log.Error("daily generation failed",
			zap.String("run_id", run.ID), zap.String("trigger", trigger),
			zap.String("date", run.TargetDate), zap.Error(err))
	} else {
		run.Status = model.RunStatusSuccess
		run.Generated = result.Generated
		run.Existing = result.Existing
		run.Total = result.Total
	}

	if recErr := s.runs.Create(ctx, &run); recErr != nil {
		s.log.Warn("failed to record scheduler run", zap.String("run_id", run.ID), zap.Error(recErr))
	}

	s.mu.Lock()
	last := run
	s.lastRun = &last
	s.mu.Unlock()

	if s.notifier != nil {
		if nErr := s.notifier.NotifyRun(ctx, run); nErr != nil {
			s.log.Warn("run notification failed", zap.String("run_id", run.ID), zap.Error(nErr))
		}
	}
	return run, err
}

func buildDailySpec(timeStr string) (string, error) {
	hour, minute, err := parseClock(timeStr)
	if err != nil {
		return "", err
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

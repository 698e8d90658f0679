package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/model"
)

type stubGenerator struct {
	mu    sync.Mutex
	err   error
	dates []clock.Date
}

func (g *stubGenerator) GenerateForDate(_ context.Context, date clock.Date) (GenerationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dates = append(g.dates, date)
	if g.err != nil {
		return GenerationResult{}, g.err
	}
	return GenerationResult{Date: date.String(), Generated: 2, Existing: 1, Total: 3}, nil
}

type memoryRuns struct {
	mu   sync.Mutex
	runs []model.SchedulerRun
	err  error
}

func (m *memoryRuns) Create(_ context.Context, run *model.SchedulerRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memoryRuns) ListRecent(_ context.Context, limit int) ([]model.SchedulerRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.runs) < limit {
		limit = len(m.runs)
	}
	return append([]model.SchedulerRun(nil), m.runs[:limit]...), nil
}

type recordingNotifier struct {
	runs []model.SchedulerRun
}

func (n *recordingNotifier) NotifyRun(_ context.Context, run model.SchedulerRun) error {
	n.runs = append(n.runs, run)
	return errors.New("telegram down")
}

// 2025-06-17 15:30 UTC is 00:30 on 2025-06-18 in Tokyo.
func fixedClock() *clock.JST {
	return clock.NewWithNow(func() time.Time {
		return time.Date(2025, 6, 17, 15, 30, 0, 0, time.UTC)
	})
}

func TestSchedulerStartStopAreIdempotent(t *testing.T) {
	s, err := NewDailyScheduler(&stubGenerator{}, &memoryRuns{}, nil, fixedClock(), zap.NewNop())
	require.NoError(t, err)

	require.False(t, s.Status().IsRunning)
	s.Stop()
	require.False(t, s.IsRunning())

	s.Start()
	s.Start()
	require.True(t, s.IsRunning())

	s.Stop()
	s.Stop()
	require.False(t, s.IsRunning())

	s.Start()
	require.True(t, s.IsRunning())
	s.Stop()
}

func TestSchedulerStatusNextRunIsTokyoMidnight(t *testing.T) {
	s, err := NewDailyScheduler(&stubGenerator{}, &memoryRuns{}, nil, fixedClock(), zap.NewNop())
	require.NoError(t, err)

	idle := s.Status()
	require.Nil(t, idle.NextRunAt)
	require.Equal(t, "not scheduled", idle.NextExecution)
	require.Equal(t, "2025-06-18 00:30:00 JST", idle.CurrentTime)

	s.Start()
	defer s.Stop()
	status := s.Status()
	require.True(t, status.IsRunning)
	require.NotNil(t, status.NextRunAt)
	require.Equal(t, "2025-06-18T15:00:00Z", status.NextRunAt.UTC().Format(time.RFC3339))
	require.Contains(t, status.NextExecution, "00:00 JST")
}

func TestExecuteManuallyRecordsRunsAndKeepsState(t *testing.T) {
	gen := &stubGenerator{err: errors.New("database is locked")}
	runs := &memoryRuns{}
	notifier := &recordingNotifier{}
	s, err := NewDailyScheduler(gen, runs, notifier, fixedClock(), zap.NewNop())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	failed, err := s.ExecuteManually(context.Background())
	require.Error(t, err)
	require.Equal(t, model.RunStatusError, failed.Status)
	require.Equal(t, "database is locked", failed.Error)
	require.Equal(t, "2025-06-18", failed.TargetDate)
	require.Equal(t, model.TriggerManual, failed.Trigger)
	require.True(t, s.IsRunning())

	gen.err = nil
	ok, err := s.ExecuteManually(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.RunStatusSuccess, ok.Status)
	require.Equal(t, 2, ok.Generated)
	require.Equal(t, 1, ok.Existing)
	require.Equal(t, 3, ok.Total)
	require.NotEqual(t, failed.ID, ok.ID)

	require.Len(t, runs.runs, 2)
	require.Len(t, notifier.runs, 2)
	require.Equal(t, ok.ID, s.Status().LastRun.ID)
	require.Equal(t, []clock.Date{mustDate(t, "2025-06-18"), mustDate(t, "2025-06-18")}, gen.dates)
}

func TestExecuteManuallyWorksWhileIdle(t *testing.T) {
	runs := &memoryRuns{err: errors.New("no table")}
	s, err := NewDailyScheduler(&stubGenerator{}, runs, nil, fixedClock(), zap.NewNop())
	require.NoError(t, err)

	run, err := s.ExecuteManually(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.RunStatusSuccess, run.Status)
	require.False(t, s.IsRunning())
	require.NotNil(t, s.Status().LastRun)
}

func TestSchedulerRunsPersistThroughRepository(t *testing.T) {
	env := newTestEnv(t)
	s, err := NewDailyScheduler(env.generator, env.runs, nil, env.clock, zap.NewNop())
	require.NoError(t, err)
	env.addMaster(t, "A", 1, nil)

	_, err = s.ExecuteManually(context.Background())
	require.NoError(t, err)
	_, err = s.ExecuteManually(context.Background())
	require.NoError(t, err)

	runs, err := s.RecentRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	generated := runs[0].Generated + runs[1].Generated
	require.Equal(t, 1, generated)
}

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("00:00")
	require.NoError(t, err)
	require.Equal(t, "0 0 0 * * *", spec)

	spec, err = buildDailySpec("7:05")
	require.NoError(t, err)
	require.Equal(t, "0 5 7 * * *", spec)

	_, err = buildDailySpec("25:00")
	require.Error(t, err)
}

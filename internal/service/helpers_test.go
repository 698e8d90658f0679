package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

const testUser = "default_user"

type testEnv struct {
	db        *gorm.DB
	now       time.Time
	clock     *clock.JST
	tasks     *repository.TaskRepository
	masters   *repository.RecurringTaskRepository
	points    *repository.PointsRepository
	runs      *repository.SchedulerRunRepository
	generator *DailyGenerator
	ledger    *PointsLedger
	taskSvc   *TaskService
}

// newTestEnv wires the services over a private in-memory database with the
// clock fixed at 2025-06-18 09:00 JST.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:      db,
		now:     time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		tasks:   repository.NewTaskRepository(db),
		masters: repository.NewRecurringTaskRepository(db),
		points:  repository.NewPointsRepository(db),
		runs:    repository.NewSchedulerRunRepository(db),
	}
	env.clock = clock.NewWithNow(func() time.Time { return env.now })

	log := zap.NewNop()
	env.generator = NewDailyGenerator(db, env.masters, env.tasks, log)
	env.ledger = NewPointsLedger(db, env.points, env.tasks, env.masters, env.clock, log)
	env.taskSvc = NewTaskService(env.tasks, env.ledger, env.clock, testUser, log)
	return env
}

func (e *testEnv) addMaster(t *testing.T, title string, points int, order *int) *model.RecurringTask {
	t.Helper()
	master := &model.RecurringTask{
		Title:        title,
		Priority:     model.PriorityMedium,
		Pattern:      model.PatternDaily,
		Config:       datatypes.NewJSONType(model.RecurrenceConfig{Time: "00:00"}),
		Points:       points,
		DisplayOrder: order,
		IsActive:     true,
	}
	require.NoError(t, e.masters.Create(context.Background(), master))
	return master
}

func (e *testEnv) addTask(t *testing.T, title string, points int, status model.TaskStatus) *model.Task {
	t.Helper()
	task := &model.Task{Title: title, Points: points, Status: status, Priority: model.PriorityLow}
	require.NoError(t, e.tasks.Create(context.Background(), nil, task))
	return task
}

func (e *testEnv) historyCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.PointHistory{}).Count(&n).Error)
	return n
}

func mustDate(t *testing.T, s string) clock.Date {
	t.Helper()
	d, err := clock.ParseDate(s)
	require.NoError(t, err)
	return d
}

func ptr[T any](v T) *T { return &v }

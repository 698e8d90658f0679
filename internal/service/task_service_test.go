package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

func TestCompletingGeneratedInstancesCreditsOncePerTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addMaster(t, "Ten", 10, ptr(1))
	env.addMaster(t, "Zero", 0, ptr(2))
	env.addMaster(t, "Five", 5, ptr(3))
	date := mustDate(t, "2025-06-18")

	first, err := env.generator.GenerateForDate(ctx, date)
	require.NoError(t, err)
	require.Equal(t, 3, first.Generated)
	require.Equal(t, 0, first.Existing)

	second, err := env.generator.GenerateForDate(ctx, date)
	require.NoError(t, err)
	require.Equal(t, 0, second.Generated)
	require.Equal(t, 3, second.Existing)

	completed := model.TaskStatusCompleted
	for _, task := range first.Tasks {
		_, err := env.taskSvc.Update(ctx, task.ID, TaskInput{Status: &completed})
		require.NoError(t, err)
		// A retried update is not a pending to completed transition.
		_, err = env.taskSvc.Update(ctx, task.ID, TaskInput{Status: &completed})
		require.NoError(t, err)
	}

	account, err := env.ledger.GetAccount(ctx, testUser)
	require.NoError(t, err)
	require.Equal(t, 15, account.TotalPoints)
	require.Equal(t, 15, account.DailyPoints)
	require.Equal(t, int64(2), env.historyCount(t))
}

func TestUpdateReturnsPointsOnCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	task := env.addTask(t, "Write report", 12, model.TaskStatusPending)

	completed := model.TaskStatusCompleted
	update, err := env.taskSvc.Update(ctx, task.ID, TaskInput{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, model.TaskStatusCompleted, update.Task.Status)
	require.NotNil(t, update.Points)
	require.Equal(t, 12, update.Points.TotalPoints)

	// Reopening and completing again must not pay twice.
	pending := model.TaskStatusPending
	_, err = env.taskSvc.Update(ctx, task.ID, TaskInput{Status: &pending})
	require.NoError(t, err)
	update, err = env.taskSvc.Update(ctx, task.ID, TaskInput{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, 12, update.Points.TotalPoints)
	require.Equal(t, int64(1), env.historyCount(t))
}

func TestUpdateSurvivesCreditFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	task := env.addTask(t, "Fragile", 8, model.TaskStatusPending)
	require.NoError(t, env.db.Migrator().DropTable(&model.UserPoints{}))

	completed := model.TaskStatusCompleted
	update, err := env.taskSvc.Update(ctx, task.ID, TaskInput{Status: &completed})
	require.NoError(t, err)
	require.Nil(t, update.Points)

	stored, err := env.tasks.FindByID(ctx, nil, task.ID)
	require.NoError(t, err)
	require.Equal(t, model.TaskStatusCompleted, stored.Status)
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := map[string]TaskInput{
		"missing title":  {},
		"blank title":    {Title: ptr("   ")},
		"long title":     {Title: ptr(strings.Repeat("x", 256))},
		"bad priority":   {Title: ptr("ok"), Priority: ptr(model.Priority("urgent"))},
		"bad status":     {Title: ptr("ok"), Status: ptr(model.TaskStatus("done"))},
		"too many point": {Title: ptr("ok"), Points: ptr(1001)},
		"negative point": {Title: ptr("ok"), Points: ptr(-1)},
	}
	for name, input := range cases {
		_, err := env.taskSvc.Create(ctx, input)
		require.ErrorIs(t, err, ErrValidation, name)
	}

	task, err := env.taskSvc.Create(ctx, TaskInput{Title: ptr("  Buy milk  "), Points: ptr(1000)})
	require.NoError(t, err)
	require.Equal(t, "Buy milk", task.Title)
	require.Equal(t, model.PriorityMedium, task.Priority)
	require.Equal(t, model.TaskStatusPending, task.Status)
}

func TestDeleteReturnsRemovedTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	task := env.addTask(t, "Temp", 0, model.TaskStatusPending)

	removed, err := env.taskSvc.Delete(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Temp", removed.Title)

	_, err = env.taskSvc.Delete(ctx, task.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDailyDefaultsToJSTToday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addMaster(t, "Daily", 1, nil)
	_, err := env.generator.GenerateForDate(ctx, env.clock.Today())
	require.NoError(t, err)

	date, tasks, err := env.taskSvc.Daily(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "2025-06-18", date)
	require.Len(t, tasks, 1)

	_, tasks, err = env.taskSvc.Daily(ctx, "2025-06-17")
	require.NoError(t, err)
	require.Empty(t, tasks)

	_, _, err = env.taskSvc.Daily(ctx, "June 18")
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRejectsPointsOnInstance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.addMaster(t, "Walk", 4, nil)
	res, err := env.generator.GenerateForDate(ctx, env.clock.Today())
	require.NoError(t, err)
	instance := res.Tasks[0]

	_, err = env.taskSvc.Update(ctx, instance.ID, TaskInput{Points: ptr(900)})
	require.ErrorIs(t, err, ErrValidation)

	stored, err := env.tasks.FindByID(ctx, nil, instance.ID)
	require.NoError(t, err)
	require.Equal(t, 4, stored.Points)

	// Standalone tasks keep their own editable points.
	task := env.addTask(t, "Solo", 1, model.TaskStatusPending)
	update, err := env.taskSvc.Update(ctx, task.ID, TaskInput{Points: ptr(9)})
	require.NoError(t, err)
	require.Equal(t, 9, update.Task.Points)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

// PointsLedger is the only writer of points accounts and point history.
type PointsLedger struct {
	db      *gorm.DB
	points  *repository.PointsRepository
	tasks   *repository.TaskRepository
	masters *repository.RecurringTaskRepository
	clock   *clock.JST
	log     *zap.Logger
}

func NewPointsLedger(
	db *gorm.DB,
	points *repository.PointsRepository,
	tasks *repository.TaskRepository,
	masters *repository.RecurringTaskRepository,
	clk *clock.JST,
	log *zap.Logger,
) *PointsLedger {
	return &PointsLedger{
		db:      db,
		points:  points,
		tasks:   tasks,
		masters: masters,
		clock:   clk,
		log:     log.Named("points"),
	}
}

// GetAccount returns the account for userID, creating it on first access.
// A snapshot from an earlier JST day is recomputed from history.
func (l *PointsLedger) GetAccount(ctx context.Context, userID string) (*model.UserPoints, error) {
	today := l.clock.Today().String()
	account, err := l.points.GetOrCreate(ctx, nil, userID, today)
	if err != nil {
		return nil, err
	}
	if account.LastUpdated == today {
		return account, nil
	}

	daily, err := l.points.SumCompletions(ctx, nil, userID, today)
	if err != nil {
		return nil, err
	}
	if err := l.points.SetDaily(ctx, nil, userID, daily, today); err != nil {
		return nil, err
	}
	account.DailyPoints = daily
	account.LastUpdated = today
	return account, nil
}

// Credit adds a positive amount to the account.
func (l *PointsLedger) Credit(ctx context.Context, amount int, userID string) (*model.UserPoints, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	var account *model.UserPoints
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = l.credit(ctx, tx, userID, amount, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.log.Info("points credited", zap.String("user_id", userID), zap.Int("amount", amount))
	return account, nil
}

// errAlreadyCredited rolls back a credit transaction that found prior history.
var errAlreadyCredited = errors.New("task already credited")

// HasCompletionHistory reports whether taskID already earned userID points.
// Lookup errors count as "already credited".
func (l *PointsLedger) HasCompletionHistory(ctx context.Context, taskID uint, userID string) bool {
	return l.hasCompletion(ctx, nil, taskID, userID)
}

func (l *PointsLedger) hasCompletion(ctx context.Context, tx *gorm.DB, taskID uint, userID string) bool {
	found, err := l.points.HasCompletion(ctx, tx, taskID, userID)
	if err != nil {
		l.log.Error("completion history lookup failed, treating task as credited",
			zap.Uint("task_id", taskID), zap.String("user_id", userID), zap.Error(err))
		return true
	}
	return found
}

// CreditForCompletedTask awards the task's points at most once per user.
// The history check, the credit and the history append share one transaction;
// the unique (user_id, task_id, action_type) index settles concurrent callers.
func (l *PointsLedger) CreditForCompletedTask(ctx context.Context, taskID uint, userID string) (*model.UserPoints, error) {
	var account *model.UserPoints
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if l.hasCompletion(ctx, tx, taskID, userID) {
			return errAlreadyCredited
		}

		task, err := l.tasks.FindByID(ctx, tx, taskID)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("task %d: %w", taskID, ErrNoCompletedTask)
		}
		if err != nil {
			return err
		}
		if task.Status != model.TaskStatusCompleted {
			return fmt.Errorf("task %d is %s: %w", taskID, task.Status, ErrNoCompletedTask)
		}

		points, err := l.resolvePoints(ctx, tx, task)
		if err != nil {
			return err
		}
		if points <= 0 {
			return nil
		}

		account, err = l.credit(ctx, tx, userID, points, &model.PointHistory{
			UserID:       userID,
			TaskID:       &task.ID,
			ActionType:   model.ActionTaskCompletion,
			PointsEarned: points,
			TaskTitle:    task.Title,
		})
		return err
	})
	switch {
	case errors.Is(err, errAlreadyCredited):
		return l.GetAccount(ctx, userID)
	case errors.Is(err, repository.ErrConstraintViolation):
		l.log.Info("task already credited by a concurrent call", zap.Uint("task_id", taskID))
		return l.GetAccount(ctx, userID)
	case err != nil:
		return nil, err
	case account == nil:
		return l.GetAccount(ctx, userID)
	}

	l.log.Info("task completion credited",
		zap.Uint("task_id", taskID),
		zap.String("user_id", userID),
		zap.Int("total_points", account.TotalPoints))
	return account, nil
}

// History lists the newest ledger entries first.
func (l *PointsLedger) History(ctx context.Context, userID string, limit int) ([]model.PointHistory, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return l.points.ListHistory(ctx, userID, limit)
}

// EffectivePoints is what completing task would earn.
func (l *PointsLedger) EffectivePoints(ctx context.Context, task *model.Task) (int, error) {
	return l.resolvePoints(ctx, nil, task)
}

// resolvePoints reads an instance's value from its master. An instance whose
// master row is gone keeps the value copied at generation time.
func (l *PointsLedger) resolvePoints(ctx context.Context, tx *gorm.DB, task *model.Task) (int, error) {
	if !task.IsInstance() {
		return task.Points, nil
	}
	master, err := l.masters.FindByID(ctx, tx, *task.SourceTaskID)
	if errors.Is(err, repository.ErrNotFound) {
		return task.Points, nil
	}
	if err != nil {
		return 0, err
	}
	return master.Points, nil
}

// credit runs inside tx. daily_points is re-summed from history, never incremented.
func (l *PointsLedger) credit(ctx context.Context, tx *gorm.DB, userID string, amount int, entry *model.PointHistory) (*model.UserPoints, error) {
	now := l.clock.Now()
	today := clock.DateOf(now).String()

	if _, err := l.points.GetOrCreate(ctx, tx, userID, today); err != nil {
		return nil, err
	}
	earned, err := l.points.SumCompletions(ctx, tx, userID, today)
	if err != nil {
		return nil, err
	}
	if err := l.points.AddPoints(ctx, tx, userID, amount, earned+amount, today); err != nil {
		return nil, err
	}
	if entry != nil {
		entry.EarnedOn = today
		entry.CreatedAt = now.UTC()
		if err := l.points.AppendHistory(ctx, tx, entry); err != nil {
			return nil, err
		}
	}
	return l.points.GetOrCreate(ctx, tx, userID, today)
}

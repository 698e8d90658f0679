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

type masterLister interface {
	ListActiveDaily(ctx context.Context, tx *gorm.DB) ([]model.RecurringTask, error)
}

type instanceStore interface {
	InstanceExists(ctx context.Context, tx *gorm.DB, sourceID uint, date string) (bool, error)
	CreateInstance(ctx context.Context, tx *gorm.DB, task *model.Task) error
	ListInstancesForDate(ctx context.Context, tx *gorm.DB, date string) ([]model.Task, error)
}

// GenerationResult summarises one GenerateForDate call.
type GenerationResult struct {
	Date      string       `json:"date"`
	Generated int          `json:"generated"`
	Existing  int          `json:"existing"`
	Total     int          `json:"total"`
	Tasks     []model.Task `json:"tasks"`
}

// DailyGenerator expands active daily masters into dated instances.
// Repeated or concurrent calls for the same date never produce a second
// instance per master: the existence check skips known rows and the unique
// (source_task_id, scheduled_date) index turns a lost race into a skip.
type DailyGenerator struct {
	db        *gorm.DB
	masters   masterLister
	instances instanceStore
	log       *zap.Logger
}

func NewDailyGenerator(db *gorm.DB, masters masterLister, instances instanceStore, log *zap.Logger) *DailyGenerator {
	return &DailyGenerator{db: db, masters: masters, instances: instances, log: log.Named("generator")}
}

func (g *DailyGenerator) GenerateForDate(ctx context.Context, date clock.Date) (GenerationResult, error) {
	day := date.String()
	result := GenerationResult{Date: day}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		masters, err := g.masters.ListActiveDaily(ctx, tx)
		if err != nil {
			return err
		}

		for _, master := range masters {
			exists, err := g.instances.InstanceExists(ctx, tx, master.ID, day)
			if err != nil {
				return err
			}
			if exists {
				result.Existing++
				continue
			}

			instance := newInstance(master, day)
			err = g.instances.CreateInstance(ctx, tx, &instance)
			switch {
			case err == nil:
				result.Generated++
			case errors.Is(err, repository.ErrConstraintViolation):
				g.log.Debug("instance created concurrently, skipping",
					zap.Uint("master_id", master.ID), zap.String("date", day))
				result.Existing++
			default:
				return fmt.Errorf("generate instance of master %d for %s: %w", master.ID, day, err)
			}
		}
		return nil
	})
	if err != nil {
		return GenerationResult{}, err
	}

	tasks, err := g.instances.ListInstancesForDate(ctx, nil, day)
	if err != nil {
		return GenerationResult{}, err
	}
	result.Tasks = tasks
	result.Total = len(tasks)

	g.log.Info("daily instances generated",
		zap.String("date", day),
		zap.Int("generated", result.Generated),
		zap.Int("existing", result.Existing),
		zap.Int("total", result.Total))
	return result, nil
}

func newInstance(master model.RecurringTask, day string) model.Task {
	sourceID := master.ID
	scheduled := day
	instance := model.Task{
		Title:         master.Title,
		Description:   master.Description,
		Status:        model.TaskStatusPending,
		Priority:      master.Priority,
		IsRecurring:   false,
		SourceTaskID:  &sourceID,
		ScheduledDate: &scheduled,
		Points:        master.Points,
	}
	if master.DisplayOrder != nil {
		order := *master.DisplayOrder
		instance.DisplayOrder = &order
	}
	return instance
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

type SchedulerRunRepository struct {
	db *gorm.DB
}

func NewSchedulerRunRepository(db *gorm.DB) *SchedulerRunRepository {
	return &SchedulerRunRepository{db: db}
}

func (r *SchedulerRunRepository) Create(ctx context.Context, run *model.SchedulerRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return translate("record scheduler run", err)
	}
	return nil
}

// ListRecent returns the newest runs first.
func (r *SchedulerRunRepository) ListRecent(ctx context.Context, limit int) ([]model.SchedulerRun, error) {
	runs := []model.SchedulerRun{}
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, translate("list scheduler runs", err)
	}
	return runs, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// RecurringTaskRepository stores the master definitions.
type RecurringTaskRepository struct {
	db *gorm.DB
}

func NewRecurringTaskRepository(db *gorm.DB) *RecurringTaskRepository {
	return &RecurringTaskRepository{db: db}
}

const masterOrder = "COALESCE(display_order, 999) ASC, created_at ASC, id ASC"

// ListActiveDaily returns the masters the generator instantiates every day.
func (r *RecurringTaskRepository) ListActiveDaily(ctx context.Context, tx *gorm.DB) ([]model.RecurringTask, error) {
	masters := []model.RecurringTask{}
	if err := conn(r.db, tx).WithContext(ctx).
		Where("is_active = ? AND pattern = ?", true, model.PatternDaily).
		Order(masterOrder).
		Find(&masters).Error; err != nil {
		return nil, translate("list active masters", err)
	}
	return masters, nil
}

// ListActive returns every active master regardless of pattern.
func (r *RecurringTaskRepository) ListActive(ctx context.Context) ([]model.RecurringTask, error) {
	masters := []model.RecurringTask{}
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(masterOrder).
		Find(&masters).Error; err != nil {
		return nil, translate("list masters", err)
	}
	return masters, nil
}

func (r *RecurringTaskRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*model.RecurringTask, error) {
	var master model.RecurringTask
	if err := conn(r.db, tx).WithContext(ctx).First(&master, id).Error; err != nil {
		return nil, translate("find master", err)
	}
	return &master, nil
}

func (r *RecurringTaskRepository) Create(ctx context.Context, master *model.RecurringTask) error {
	if err := r.db.WithContext(ctx).Create(master).Error; err != nil {
		return translate("create master", err)
	}
	return nil
}

func (r *RecurringTaskRepository) Save(ctx context.Context, tx *gorm.DB, master *model.RecurringTask) error {
	if err := conn(r.db, tx).WithContext(ctx).Save(master).Error; err != nil {
		return translate("save master", err)
	}
	return nil
}

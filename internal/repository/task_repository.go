package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// TaskRepository handles persistence for regular tasks and daily instances.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, tx *gorm.DB, task *model.Task) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(task).Error; err != nil {
		return translate("create task", err)
	}
	return nil
}

// CreateInstance inserts a generated instance inside a savepoint, so a unique
// violation leaves the enclosing transaction usable.
func (r *TaskRepository) CreateInstance(ctx context.Context, tx *gorm.DB, task *model.Task) error {
	err := conn(r.db, tx).WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		return sp.Create(task).Error
	})
	if err != nil {
		return translate("create task instance", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Task, error) {
	var task model.Task
	if err := conn(r.db, tx).WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate("find task", err)
	}
	return &task, nil
}

// ListRegular returns tasks that are neither masters nor generated instances.
func (r *TaskRepository) ListRegular(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).
		Where("is_recurring = ? AND source_task_id IS NULL", false).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, translate("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) InstanceExists(ctx context.Context, tx *gorm.DB, sourceID uint, date string) (bool, error) {
	var count int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&model.Task{}).
		Where("source_task_id = ? AND scheduled_date = ?", sourceID, date).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, translate("check task instance", err)
	}
	return count > 0, nil
}

func (r *TaskRepository) ListInstancesForDate(ctx context.Context, tx *gorm.DB, date string) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := conn(r.db, tx).WithContext(ctx).
		Where("source_task_id IS NOT NULL AND scheduled_date = ?", date).
		Order("COALESCE(display_order, 999) ASC, created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, translate("list task instances", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, tx *gorm.DB, task *model.Task) error {
	if err := conn(r.db, tx).WithContext(ctx).Save(task).Error; err != nil {
		return translate("save task", err)
	}
	return nil
}

// Delete removes a regular task or an instance.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return translate("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete task: %w", ErrNotFound)
	}
	return nil
}

// DeletePendingInstances removes the still-pending instances of a master.
// Completed instances stay so their point history keeps a referent.
func (r *TaskRepository) DeletePendingInstances(ctx context.Context, tx *gorm.DB, sourceID uint) (int64, error) {
	res := conn(r.db, tx).WithContext(ctx).
		Where("source_task_id = ? AND status = ?", sourceID, model.TaskStatusPending).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, translate("delete task instances", res.Error)
	}
	return res.RowsAffected, nil
}

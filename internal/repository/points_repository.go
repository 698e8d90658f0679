package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// PointsRepository persists points accounts and the append-only history.
type PointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

// GetOrCreate finds the account for userID or creates a zeroed one.
func (r *PointsRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, today string) (*model.UserPoints, error) {
	db := conn(r.db, tx).WithContext(ctx)

	var account model.UserPoints
	err := db.Where("user_id = ?", userID).First(&account).Error
	switch {
	case err == nil:
		return &account, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = model.UserPoints{UserID: userID, LastUpdated: today}
		createErr := db.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&account).Error
		})
		if createErr == nil {
			return &account, nil
		}
		if !isUniqueViolation(createErr) {
			return nil, translate("create points account", createErr)
		}
		// Lost the creation race, read the winner's row.
		if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
			return nil, translate("find points account", err)
		}
		return &account, nil
	default:
		return nil, translate("find points account", err)
	}
}

// AddPoints increments total_points in SQL and stores the recomputed daily snapshot.
func (r *PointsRepository) AddPoints(ctx context.Context, tx *gorm.DB, userID string, amount, daily int, today string) error {
	res := conn(r.db, tx).WithContext(ctx).Model(&model.UserPoints{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_points": gorm.Expr("total_points + ?", amount),
			"daily_points": daily,
			"last_updated": today,
		})
	if res.Error != nil {
		return translate("add points", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("add points", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *PointsRepository) SetDaily(ctx context.Context, tx *gorm.DB, userID string, daily int, today string) error {
	if err := conn(r.db, tx).WithContext(ctx).Model(&model.UserPoints{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"daily_points": daily,
			"last_updated": today,
		}).Error; err != nil {
		return translate("refresh daily points", err)
	}
	return nil
}

// SumCompletions totals the task_completion points earned by userID on day.
func (r *PointsRepository) SumCompletions(ctx context.Context, tx *gorm.DB, userID, day string) (int, error) {
	var total int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&model.PointHistory{}).
		Select("COALESCE(SUM(points_earned), 0)").
		Where("user_id = ? AND earned_on = ? AND action_type = ?", userID, day, model.ActionTaskCompletion).
		Scan(&total).Error; err != nil {
		return 0, translate("sum daily points", err)
	}
	return int(total), nil
}

func (r *PointsRepository) HasCompletion(ctx context.Context, tx *gorm.DB, taskID uint, userID string) (bool, error) {
	var count int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&model.PointHistory{}).
		Where("task_id = ? AND user_id = ? AND action_type = ?", taskID, userID, model.ActionTaskCompletion).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, translate("check point history", err)
	}
	return count > 0, nil
}

func (r *PointsRepository) AppendHistory(ctx context.Context, tx *gorm.DB, entry *model.PointHistory) error {
	if err := conn(r.db, tx).WithContext(ctx).Create(entry).Error; err != nil {
		return translate("append point history", err)
	}
	return nil
}

func (r *PointsRepository) ListHistory(ctx context.Context, userID string, limit int) ([]model.PointHistory, error) {
	entries := []model.PointHistory{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, translate("list point history", err)
	}
	return entries, nil
}

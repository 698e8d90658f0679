package model

import "time"

const (
	ActionTaskCompletion = "task_completion"
)

// UserPoints is the per-user points account.
type UserPoints struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	TotalPoints int       `gorm:"not null;default:0" json:"total_points"`
	DailyPoints int       `gorm:"not null;default:0" json:"daily_points"`
	LastUpdated string    `gorm:"size:10" json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PointHistory is an append-only ledger row. The unique index makes a second
// task_completion row for the same (user, task) impossible.
type PointHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:64;not null;uniqueIndex:idx_point_histories_award,priority:1;index:idx_point_histories_day,priority:1" json:"user_id"`
	TaskID       *uint     `gorm:"uniqueIndex:idx_point_histories_award,priority:2" json:"task_id"`
	ActionType   string    `gorm:"size:32;not null;uniqueIndex:idx_point_histories_award,priority:3" json:"action_type"`
	PointsEarned int       `gorm:"not null" json:"points_earned"`
	TaskTitle    string    `gorm:"size:255" json:"task_title"`
	EarnedOn     string    `gorm:"size:10;not null;index:idx_point_histories_day,priority:2" json:"earned_on"`
	CreatedAt    time.Time `json:"created_at"`
}

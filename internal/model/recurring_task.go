package model

import (
	"time"

	"gorm.io/datatypes"
)

const PatternDaily = "daily"

// RecurrenceConfig is the typed form of the recurring_tasks.config JSON column.
type RecurrenceConfig struct {
	Time string `json:"time"`
}

// RecurringTask is the master definition daily instances are generated from.
// Masters are never hard-deleted; deletion flips IsActive.
type RecurringTask struct {
	ID           uint                                 `gorm:"primaryKey" json:"id"`
	Title        string                               `gorm:"size:255;not null" json:"title"`
	Description  string                               `json:"description"`
	Priority     Priority                             `gorm:"size:16;not null;default:medium" json:"priority"`
	Pattern      string                               `gorm:"size:16;not null;default:daily" json:"pattern"`
	Config       datatypes.JSONType[RecurrenceConfig] `json:"recurring_config"`
	Points       int                                  `gorm:"not null;default:0" json:"points"`
	DisplayOrder *int                                 `json:"display_order"`
	IsActive     bool                                 `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time                            `json:"created_at"`
	UpdatedAt    time.Time                            `json:"updated_at"`
}

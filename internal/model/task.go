package model

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is either a regular task or a dated instance generated from a RecurringTask.
// Instances carry SourceTaskID and ScheduledDate; regular tasks leave both nil.
type Task struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `json:"description"`
	Status        TaskStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	Priority      Priority   `gorm:"size:16;not null;default:medium" json:"priority"`
	IsRecurring   bool       `gorm:"not null;default:false" json:"is_recurring"`
	SourceTaskID  *uint      `gorm:"uniqueIndex:idx_tasks_source_date,priority:1" json:"source_task_id"`
	ScheduledDate *string    `gorm:"size:10;uniqueIndex:idx_tasks_source_date,priority:2;index" json:"scheduled_date"`
	DisplayOrder  *int       `json:"display_order"`
	Points        int        `gorm:"not null;default:0" json:"points"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsInstance reports whether the task was generated from a master.
func (t Task) IsInstance() bool {
	return t.SourceTaskID != nil
}

package model

import "time"

const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"

	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// SchedulerRun records one firing of the daily generation job.
type SchedulerRun struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Trigger    string    `gorm:"size:16;not null" json:"trigger"`
	TargetDate string    `gorm:"size:10;not null;index" json:"target_date"`
	Status     string    `gorm:"size:16;not null" json:"status"`
	Generated  int       `json:"generated"`
	Existing   int       `json:"existing"`
	Total      int       `json:"total"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

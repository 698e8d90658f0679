package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gorm.io/gorm"

	"daily-tasks/internal/model"
)

// Sender delivers a rendered HTML message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

type dayLister interface {
	ListInstancesForDate(ctx context.Context, tx *gorm.DB, date string) ([]model.Task, error)
}

// ReminderService turns a finished scheduler run into a summary of the day's tasks.
type ReminderService struct {
	instances dayLister
	sender    Sender
}

func NewReminderService(instances dayLister, sender Sender) *ReminderService {
	return &ReminderService{instances: instances, sender: sender}
}

func (s *ReminderService) NotifyRun(ctx context.Context, run model.SchedulerRun) error {
	tasks, err := s.instances.ListInstancesForDate(ctx, nil, run.TargetDate)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, RunSummary(run, tasks))
}

// RunSummary renders run and the day's instances as Telegram HTML.
func RunSummary(run model.SchedulerRun, tasks []model.Task) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Daily tasks</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n", run.TargetDate))

	if run.Status == model.RunStatusError {
		builder.WriteString(fmt.Sprintf("⚠️ generation failed: %s\n", html.EscapeString(run.Error)))
	} else {
		builder.WriteString(fmt.Sprintf("✨ %d new · %d existing\n", run.Generated, run.Existing))
	}

	builder.WriteByte('\n')
	if len(tasks) == 0 {
		builder.WriteString("— nothing scheduled\n")
	}
	for _, task := range tasks {
		builder.WriteString(formatTask(task))
	}
	return strings.TrimSpace(builder.String())
}

func formatTask(task model.Task) string {
	var sb strings.Builder

	icon := "🟢"
	switch {
	case task.Status == model.TaskStatusCompleted:
		icon = "✅"
	case task.Priority == model.PriorityHigh:
		icon = "🔥"
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))
	if task.Points > 0 {
		sb.WriteString(fmt.Sprintf(" <i>(+%d)</i>", task.Points))
	}
	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}

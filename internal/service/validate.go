package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"daily-tasks/internal/model"
)

const (
	maxTitleLen = 255
	maxPoints   = 1000
)

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", validationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", validationError("title must be at most %d characters", maxTitleLen)
	}
	return title, nil
}

func checkPriority(p model.Priority) error {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	}
	return validationError("priority must be one of low, medium, high")
}

func checkStatus(s model.TaskStatus) error {
	switch s {
	case model.TaskStatusPending, model.TaskStatusCompleted:
		return nil
	}
	return validationError("status must be pending or completed")
}

func checkPoints(points int) error {
	if points < 0 || points > maxPoints {
		return validationError("points must be between 0 and %d", maxPoints)
	}
	return nil
}

// parseClock parses "H:MM" or "HH:MM" into hour and minute.
func parseClock(value string) (int, int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

// TaskInput carries the writable task fields. Nil fields are left unchanged on update.
type TaskInput struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Status       *model.TaskStatus `json:"status"`
	Priority     *model.Priority   `json:"priority"`
	Points       *int              `json:"points"`
	DisplayOrder *int              `json:"display_order"`
}

// TaskDetail is a task with the points completing it would earn.
type TaskDetail struct {
	model.Task
	EffectivePoints int `json:"effective_points"`
}

// TaskUpdate is the result of an update; Points is set when a completion was credited.
type TaskUpdate struct {
	Task   *model.Task       `json:"task"`
	Points *model.UserPoints `json:"points,omitempty"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks  *repository.TaskRepository
	ledger *PointsLedger
	clock  *clock.JST
	userID string
	log    *zap.Logger
}

func NewTaskService(tasks *repository.TaskRepository, ledger *PointsLedger, clk *clock.JST, userID string, log *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, ledger: ledger, clock: clk, userID: userID, log: log.Named("tasks")}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.tasks.ListRegular(ctx)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	points, err := s.ledger.EffectivePoints(ctx, task)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: *task, EffectivePoints: points}, nil
}

func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == nil {
		return nil, validationError("title is required")
	}
	task := model.Task{
		Status:   model.TaskStatusPending,
		Priority: model.PriorityMedium,
	}
	if err := applyTaskInput(&task, input); err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies input. A pending to completed transition credits the task's
// points; a failed credit is logged and does not fail the update.
func (s *TaskService) Update(ctx context.Context, id uint, input TaskInput) (*TaskUpdate, error) {
	task, err := s.tasks.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	previous := task.Status
	if task.IsInstance() && input.Points != nil {
		return nil, validationError("points of a generated task come from its recurring task")
	}

	if err := applyTaskInput(task, input); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, nil, task); err != nil {
		return nil, err
	}

	result := &TaskUpdate{Task: task}
	if previous == model.TaskStatusPending && task.Status == model.TaskStatusCompleted {
		account, err := s.ledger.CreditForCompletedTask(ctx, task.ID, s.userID)
		if err != nil {
			s.log.Warn("points credit failed, task stays completed",
				zap.Uint("task_id", task.ID), zap.Error(err))
		} else {
			result.Points = account
		}
	}
	return result, nil
}

// Delete removes a task and returns the removed row.
func (s *TaskService) Delete(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return nil, err
	}
	return task, nil
}

// Daily lists the instances scheduled for date, or for JST today when date is empty.
func (s *TaskService) Daily(ctx context.Context, date string) (string, []model.Task, error) {
	day := s.clock.Today()
	if date = strings.TrimSpace(date); date != "" {
		parsed, err := clock.ParseDate(date)
		if err != nil {
			return "", nil, validationError("%v", err)
		}
		day = parsed
	}
	tasks, err := s.tasks.ListInstancesForDate(ctx, nil, day.String())
	if err != nil {
		return "", nil, err
	}
	return day.String(), tasks, nil
}

func applyTaskInput(task *model.Task, input TaskInput) error {
	if input.Title != nil {
		title, err := cleanTitle(*input.Title)
		if err != nil {
			return err
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if err := checkStatus(*input.Status); err != nil {
			return err
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if err := checkPriority(*input.Priority); err != nil {
			return err
		}
		task.Priority = *input.Priority
	}
	if input.Points != nil {
		if err := checkPoints(*input.Points); err != nil {
			return err
		}
		task.Points = *input.Points
	}
	if input.DisplayOrder != nil {
		order := *input.DisplayOrder
		task.DisplayOrder = &order
	}
	return nil
}

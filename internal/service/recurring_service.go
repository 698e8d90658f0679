package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
)

// RecurringInput carries writable master fields. Nil fields keep their value on update.
type RecurringInput struct {
	Title        *string                 `json:"title"`
	Description  *string                 `json:"description"`
	Priority     *model.Priority         `json:"priority"`
	Pattern      *string                 `json:"pattern"`
	Config       *model.RecurrenceConfig `json:"recurring_config"`
	Points       *int                    `json:"points"`
	DisplayOrder *int                    `json:"display_order"`
}

// Deactivation reports what DELETE on a master did.
type Deactivation struct {
	Master           *model.RecurringTask `json:"master"`
	RemovedInstances int64                `json:"removed_instances"`
}

// RecurringService is the admin surface for master definitions.
type RecurringService struct {
	db      *gorm.DB
	masters *repository.RecurringTaskRepository
	tasks   *repository.TaskRepository
	log     *zap.Logger
}

func NewRecurringService(db *gorm.DB, masters *repository.RecurringTaskRepository, tasks *repository.TaskRepository, log *zap.Logger) *RecurringService {
	return &RecurringService{db: db, masters: masters, tasks: tasks, log: log.Named("recurring")}
}

func (s *RecurringService) List(ctx context.Context) ([]model.RecurringTask, error) {
	return s.masters.ListActive(ctx)
}

func (s *RecurringService) Get(ctx context.Context, id uint) (*model.RecurringTask, error) {
	return s.masters.FindByID(ctx, nil, id)
}

func (s *RecurringService) Create(ctx context.Context, input RecurringInput) (*model.RecurringTask, error) {
	if input.Title == nil {
		return nil, validationError("title is required")
	}
	if input.Config == nil {
		return nil, validationError("recurring_config with time is required")
	}
	master := model.RecurringTask{
		Priority: model.PriorityMedium,
		Pattern:  model.PatternDaily,
		IsActive: true,
	}
	if err := applyRecurringInput(&master, input); err != nil {
		return nil, err
	}
	if err := s.masters.Create(ctx, &master); err != nil {
		return nil, err
	}
	s.log.Info("master created", zap.Uint("id", master.ID), zap.String("title", master.Title))
	return &master, nil
}

func (s *RecurringService) Update(ctx context.Context, id uint, input RecurringInput) (*model.RecurringTask, error) {
	master, err := s.findActive(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := applyRecurringInput(master, input); err != nil {
		return nil, err
	}
	if err := s.masters.Save(ctx, nil, master); err != nil {
		return nil, err
	}
	return master, nil
}

// Deactivate flips is_active off. With cascade the master's pending instances
// are removed as well; completed ones are kept.
func (s *RecurringService) Deactivate(ctx context.Context, id uint, cascade bool) (*Deactivation, error) {
	result := &Deactivation{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		master, err := s.findActive(ctx, tx, id)
		if err != nil {
			return err
		}
		master.IsActive = false
		if err := s.masters.Save(ctx, tx, master); err != nil {
			return err
		}
		result.Master = master

		if cascade {
			removed, err := s.tasks.DeletePendingInstances(ctx, tx, master.ID)
			if err != nil {
				return err
			}
			result.RemovedInstances = removed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("master deactivated",
		zap.Uint("id", id), zap.Bool("cascade", cascade), zap.Int64("removed_instances", result.RemovedInstances))
	return result, nil
}

// findActive treats a deactivated master as gone.
func (s *RecurringService) findActive(ctx context.Context, tx *gorm.DB, id uint) (*model.RecurringTask, error) {
	master, err := s.masters.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !master.IsActive {
		return nil, fmt.Errorf("master %d is inactive: %w", id, repository.ErrNotFound)
	}
	return master, nil
}

func applyRecurringInput(master *model.RecurringTask, input RecurringInput) error {
	if input.Title != nil {
		title, err := cleanTitle(*input.Title)
		if err != nil {
			return err
		}
		master.Title = title
	}
	if input.Description != nil {
		master.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		if err := checkPriority(*input.Priority); err != nil {
			return err
		}
		master.Priority = *input.Priority
	}
	if input.Pattern != nil {
		if *input.Pattern != model.PatternDaily {
			return validationError("pattern must be %q", model.PatternDaily)
		}
		master.Pattern = *input.Pattern
	}
	if input.Config != nil {
		at := strings.TrimSpace(input.Config.Time)
		if at == "" {
			return validationError("recurring_config.time is required")
		}
		if _, _, err := parseClock(at); err != nil {
			return validationError("%v", err)
		}
		master.Config = datatypes.NewJSONType(model.RecurrenceConfig{Time: at})
	}
	if input.Points != nil {
		if err := checkPoints(*input.Points); err != nil {
			return err
		}
		master.Points = *input.Points
	}
	if input.DisplayOrder != nil {
		order := *input.DisplayOrder
		master.DisplayOrder = &order
	}
	return nil
}

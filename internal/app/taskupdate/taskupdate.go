package taskupdate

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the task update service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskUpdate"})

	return nil
}

// Service handles partial task updates. The update is validated against
// the merged task before anything is written: an invalid field rejects
// the whole update and leaves the stored task untouched.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new task update service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the update request parameters. DurationDays is a
// convenience that computes the end date from the (possibly updated)
// start date; it conflicts with an explicit end date.
type Request struct {
	ProjectID    string
	TaskID       string
	Update       model.TaskUpdate
	DurationDays *int
}

// Run applies a partial update to a task and returns the updated task.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}
	if req.TaskID == "" {
		return nil, fmt.Errorf("task id cannot be empty: %w", model.ErrNotValid)
	}
	if req.Update.Empty() && req.DurationDays == nil {
		return nil, fmt.Errorf("nothing to update: %w", model.ErrNotValid)
	}
	if req.Update.EndDate != nil && req.DurationDays != nil {
		return nil, fmt.Errorf("cannot specify both an end date and a duration: %w", model.ErrNotValid)
	}

	current, err := s.repo.GetTask(ctx, req.ProjectID, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task %q in project %q: %w", req.TaskID, req.ProjectID, err)
	}

	update := req.Update
	if req.DurationDays != nil {
		if *req.DurationDays <= 0 {
			return nil, fmt.Errorf("duration must be a positive number of days: %w", model.ErrNotValid)
		}

		start := current.StartDate
		if update.StartDate != nil {
			start = *update.StartDate
		}
		// Duration includes the start day.
		end := start.AddDate(0, 0, *req.DurationDays-1)
		update.EndDate = &end
	}

	updated, err := update.Apply(*current)
	if err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}

	if err := s.repo.UpdateTask(ctx, req.ProjectID, updated); err != nil {
		return nil, fmt.Errorf("could not save task: %w", err)
	}

	s.logger.Infof("Updated task %s in project %s", updated.ID, req.ProjectID)

	return &updated, nil
}

package taskremove

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the task remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskRemove"})

	return nil
}

// Service deletes a task from a project.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new task remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	ProjectID string
	TaskID    string
}

// Run deletes the task and returns it as it was before deletion.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}
	if req.TaskID == "" {
		return nil, fmt.Errorf("task id cannot be empty: %w", model.ErrNotValid)
	}

	task, err := s.repo.GetTask(ctx, req.ProjectID, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task %q in project %q: %w", req.TaskID, req.ProjectID, err)
	}

	if err := s.repo.DeleteTask(ctx, req.ProjectID, req.TaskID); err != nil {
		return nil, fmt.Errorf("could not delete task %q in project %q: %w", req.TaskID, req.ProjectID, err)
	}

	s.logger.Infof("Deleted task %s (%s) from project %s", task.Name, task.ID, req.ProjectID)

	return task, nil
}

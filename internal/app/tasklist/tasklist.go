package tasklist

import (
	"context"
	"fmt"
	"sort"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the task list service.
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

	return nil
}

// Service lists the tasks of a project.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new task list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	ProjectID string
}

// Run lists the tasks of a project ordered by start date, ties broken
// by task id.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}

	tasks, err := s.repo.ListTasks(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks of project %q: %w", req.ProjectID, err)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].StartDate.Equal(tasks[j].StartDate) {
			return tasks[i].StartDate.Before(tasks[j].StartDate)
		}
		return tasks[i].ID < tasks[j].ID
	})

	s.logger.Debugf("found %d tasks in project %q", len(tasks), req.ProjectID)
	return tasks, nil
}

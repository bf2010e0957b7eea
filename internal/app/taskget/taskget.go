package taskget

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the task get service.
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

// Service resolves a single task with its project context.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new task get service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the get request parameters.
type Request struct {
	ProjectID string
	TaskID    string
}

// Response carries the task together with its project summary.
type Response struct {
	Task    model.Task
	Project model.ProjectSummary
}

// Run returns the task details and the project it belongs to.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}
	if req.TaskID == "" {
		return nil, fmt.Errorf("task id cannot be empty: %w", model.ErrNotValid)
	}

	project, err := s.repo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not get project %q: %w", req.ProjectID, err)
	}

	task, err := project.Task(req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task %q in project %q: %w", req.TaskID, req.ProjectID, err)
	}

	return &Response{
		Task:    *task,
		Project: project.Summary(),
	}, nil
}

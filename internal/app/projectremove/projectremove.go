package projectremove

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the project remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ProjectRemove"})

	return nil
}

// Service deletes a project and all its tasks.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new project remove service.
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
}

// Run deletes the project and returns a summary of what was removed.
func (s *Service) Run(ctx context.Context, req Request) (*model.ProjectSummary, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}

	project, err := s.repo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not get project %q: %w", req.ProjectID, err)
	}

	if err := s.repo.DeleteProject(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("could not delete project %q: %w", req.ProjectID, err)
	}

	summary := project.Summary()

	s.logger.Infof("Deleted project: %s (%s) with %d tasks", summary.Name, summary.ID, summary.TaskCount)

	return &summary, nil
}

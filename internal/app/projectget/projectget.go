package projectget

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the project get service.
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

// Service resolves a single project with all its tasks.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new project get service.
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
}

// Run returns the project with the given id.
func (s *Service) Run(ctx context.Context, req Request) (*model.Project, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}

	project, err := s.repo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not get project %q: %w", req.ProjectID, err)
	}

	return project, nil
}

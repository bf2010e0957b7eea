package projectlist

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the project list service.
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

// Service lists projects as summaries.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new project list service.
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
	// OwnerFilter is an optional filter to only show projects with this owner.
	OwnerFilter *string
}

// Run lists all projects, optionally filtered by owner. The repository
// guarantees the order (creation time, then id).
func (s *Service) Run(ctx context.Context, req Request) ([]model.ProjectSummary, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list projects: %w", err)
	}

	summaries := make([]model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		if req.OwnerFilter != nil && p.Owner != *req.OwnerFilter {
			continue
		}
		summaries = append(summaries, p.Summary())
	}

	s.logger.Debugf("found %d projects", len(summaries))
	return summaries, nil
}

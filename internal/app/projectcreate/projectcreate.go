package projectcreate

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
)

// ServiceConfig is the configuration for the project create service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ProjectCreate"})

	return nil
}

// Service handles project creation business logic.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new project create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the project creation parameters.
type Request struct {
	Name  string
	Owner string
}

// Run creates a new project with a generated id.
func (s *Service) Run(ctx context.Context, req Request) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("project name cannot be empty: %w", model.ErrNotValid)
	}

	project := model.Project{
		ID:        "proj_" + ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String(),
		Name:      name,
		Owner:     strings.TrimSpace(req.Owner),
		CreatedAt: time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("could not save project: %w", err)
	}

	s.logger.Infof("Created project: %s (%s)", project.Name, project.ID)

	return &project, nil
}

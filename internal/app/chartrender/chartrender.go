package chartrender

import (
	"context"
	"fmt"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage"
	"github.com/ganttmcp/ganttmcp/internal/timeline"
)

// Renderer produces a chart document from a project and its timeline.
type Renderer interface {
	Render(project model.Project, chart timeline.Chart) (string, error)
}

// ServiceConfig is the configuration for the chart render service.
type ServiceConfig struct {
	Repository storage.Repository
	Renderer   Renderer
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Renderer == nil {
		return fmt.Errorf("renderer is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ChartRender"})

	return nil
}

// Service renders the chart of a project. It only produces the document
// content, writing it anywhere is up to the caller.
type Service struct {
	repo     storage.Repository
	renderer Renderer
	logger   log.Logger
}

// NewService creates a new chart render service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		renderer: cfg.Renderer,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the render request parameters.
type Request struct {
	ProjectID string
}

// Response carries the rendered document and the project it belongs to.
type Response struct {
	Project model.ProjectSummary
	Content string
}

// Run computes the project timeline and renders it. A project without
// tasks renders the placeholder document rather than failing.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}

	project, err := s.repo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not get project %q: %w", req.ProjectID, err)
	}

	chart := timeline.New(*project)

	// Every row must map back to a task of the project.
	if len(chart.Rows) != len(project.Tasks) {
		return nil, fmt.Errorf("layout produced %d rows for %d tasks: %w", len(chart.Rows), len(project.Tasks), model.ErrNotRenderable)
	}
	for _, row := range chart.Rows {
		if _, err := project.Task(row.TaskID); err != nil {
			return nil, fmt.Errorf("layout produced a row for unknown task %q: %w", row.TaskID, model.ErrNotRenderable)
		}
	}

	content, err := s.renderer.Render(*project, chart)
	if err != nil {
		return nil, fmt.Errorf("could not render chart of project %q: %w", req.ProjectID, err)
	}

	s.logger.Debugf("rendered chart of project %q (%d rows)", req.ProjectID, len(chart.Rows))

	return &Response{
		Project: project.Summary(),
		Content: content,
	}, nil
}

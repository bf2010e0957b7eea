package projectimport

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
	storageio "github.com/ganttmcp/ganttmcp/internal/storage/io"
)

// PlanGetter knows how to load a project plan.
type PlanGetter interface {
	GetPlan(ctx context.Context, path string) (storageio.Plan, error)
}

// ServiceConfig is the configuration for the project import service.
type ServiceConfig struct {
	Repository storage.Repository
	PlanGetter PlanGetter
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.PlanGetter == nil {
		return fmt.Errorf("plan getter is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ProjectImport"})

	return nil
}

// Service imports a whole project from a plan file. The plan is converted
// and validated in full before the first write, so a bad task never leaves
// a half-imported project behind.
type Service struct {
	repo   storage.Repository
	plans  PlanGetter
	logger log.Logger
}

// NewService creates a new project import service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		plans:  cfg.PlanGetter,
		logger: cfg.Logger,
	}, nil
}

// Request represents the import request parameters.
type Request struct {
	PlanPath string
}

// Run imports the plan as a new project with generated ids.
func (s *Service) Run(ctx context.Context, req Request) (*model.Project, error) {
	if req.PlanPath == "" {
		return nil, fmt.Errorf("plan path cannot be empty: %w", model.ErrNotValid)
	}

	plan, err := s.plans.GetPlan(ctx, req.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("could not load plan %q: %w", req.PlanPath, err)
	}

	now := time.Now().UTC()
	project := model.Project{
		ID:        "proj_" + ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Name:      strings.TrimSpace(plan.Name),
		Owner:     strings.TrimSpace(plan.Owner),
		CreatedAt: now,
	}

	for i, pt := range plan.Tasks {
		task, err := planTaskToModel(pt, now)
		if err != nil {
			return nil, fmt.Errorf("invalid task %d (%q): %w", i, pt.Name, err)
		}
		project.Tasks = append(project.Tasks, task)
	}

	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("could not save project: %w", err)
	}

	s.logger.Infof("Imported project %s (%s) with %d tasks from %s", project.Name, project.ID, len(project.Tasks), req.PlanPath)

	return &project, nil
}

func planTaskToModel(pt storageio.PlanTask, now time.Time) (model.Task, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if pt.StartDate != "" {
		var err error
		start, err = model.ParseDate(pt.StartDate)
		if err != nil {
			return model.Task{}, fmt.Errorf("invalid start date: %w", err)
		}
	}

	var end time.Time
	switch {
	case pt.EndDate != "" && pt.DurationDays != 0:
		return model.Task{}, fmt.Errorf("cannot specify both an end date and a duration: %w", model.ErrNotValid)
	case pt.EndDate != "":
		var err error
		end, err = model.ParseDate(pt.EndDate)
		if err != nil {
			return model.Task{}, fmt.Errorf("invalid end date: %w", err)
		}
	case pt.DurationDays != 0:
		if pt.DurationDays < 0 {
			return model.Task{}, fmt.Errorf("duration must be a positive number of days: %w", model.ErrNotValid)
		}
		end = start.AddDate(0, 0, pt.DurationDays-1)
	default:
		end = start
	}

	return model.Task{
		ID:          "task_" + ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Name:        strings.TrimSpace(pt.Name),
		Description: pt.Description,
		Owner:       strings.TrimSpace(pt.Owner),
		Progress:    pt.Progress,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
	}, nil
}

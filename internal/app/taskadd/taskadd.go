package taskadd

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

// ServiceConfig is the configuration for the task add service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskAdd"})

	return nil
}

// Service handles task creation business logic.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new task add service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task creation parameters. StartDate defaults to
// today when absent. The end date comes from EndDate or DurationDays,
// never both; with neither the task lasts a single day.
type Request struct {
	ProjectID    string
	Name         string
	Description  string
	Owner        string
	Progress     int
	StartDate    *time.Time
	EndDate      *time.Time
	DurationDays *int
}

// Run adds a new task to an existing project.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id cannot be empty: %w", model.ErrNotValid)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("task name cannot be empty: %w", model.ErrNotValid)
	}

	start, end, err := resolveDates(req.StartDate, req.EndDate, req.DurationDays)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		ID:          "task_" + ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String(),
		Name:        name,
		Description: req.Description,
		Owner:       strings.TrimSpace(req.Owner),
		Progress:    req.Progress,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	if err := s.repo.CreateTask(ctx, req.ProjectID, task); err != nil {
		return nil, fmt.Errorf("could not save task: %w", err)
	}

	s.logger.Infof("Added task %s (%s) to project %s", task.Name, task.ID, req.ProjectID)

	return &task, nil
}

func resolveDates(startDate, endDate *time.Time, durationDays *int) (start, end time.Time, err error) {
	if startDate != nil {
		start = startDate.UTC().Truncate(24 * time.Hour)
	} else {
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	switch {
	case endDate != nil && durationDays != nil:
		return time.Time{}, time.Time{}, fmt.Errorf("cannot specify both an end date and a duration: %w", model.ErrNotValid)
	case endDate != nil:
		end = endDate.UTC().Truncate(24 * time.Hour)
	case durationDays != nil:
		if *durationDays <= 0 {
			return time.Time{}, time.Time{}, fmt.Errorf("duration must be a positive number of days: %w", model.ErrNotValid)
		}
		// Duration includes the start day.
		end = start.AddDate(0, 0, *durationDays-1)
	default:
		end = start
	}

	return start, end, nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	projects map[string]model.Project
	mu       sync.RWMutex
	logger   log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		projects: make(map[string]model.Project),
		logger:   cfg.Logger,
	}, nil
}

// CreateProject creates a new project in the repository.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; ok {
		return fmt.Errorf("project with id %s: %w", p.ID, model.ErrAlreadyExists)
	}

	r.projects[p.ID] = copyProject(p)
	r.logger.Debugf("Created project in repository: %s", p.ID)

	return nil
}

// GetProject retrieves a project by ID, including all its tasks.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}

	projectCopy := copyProject(project)
	return &projectCopy, nil
}

// ListProjects returns all projects ordered by creation time then ID, so the
// listing is stable regardless of map iteration order.
func (r *Repository) ListProjects(ctx context.Context) ([]model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, copyProject(p))
	}

	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.Before(projects[j].CreatedAt)
		}
		return projects[i].ID < projects[j].ID
	})

	return projects, nil
}

// DeleteProject deletes a project and all its tasks.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}

	delete(r.projects, id)
	r.logger.Debugf("Deleted project from repository: %s", id)

	return nil
}

// CreateTask appends a new task to a project.
func (r *Repository) CreateTask(ctx context.Context, projectID string, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	for _, existing := range project.Tasks {
		if existing.ID == t.ID {
			return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
		}
	}

	project.Tasks = append(project.Tasks, t)
	r.projects[projectID] = project
	r.logger.Debugf("Created task in repository: %s/%s", projectID, t.ID)

	return nil
}

// GetTask retrieves a task by project and task ID.
func (r *Repository) GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	return project.Task(taskID)
}

// ListTasks returns all tasks of a project in insertion order.
func (r *Repository) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	tasks := make([]model.Task, len(project.Tasks))
	copy(tasks, project.Tasks)

	return tasks, nil
}

// UpdateTask replaces an existing task keeping its position in the project.
func (r *Repository) UpdateTask(ctx context.Context, projectID string, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	for i := range project.Tasks {
		if project.Tasks[i].ID == t.ID {
			project.Tasks[i] = t
			r.projects[projectID] = project
			r.logger.Debugf("Updated task in repository: %s/%s", projectID, t.ID)
			return nil
		}
	}

	return fmt.Errorf("task %s in project %s: %w", t.ID, projectID, model.ErrNotFound)
}

// DeleteTask removes a task from a project.
func (r *Repository) DeleteTask(ctx context.Context, projectID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			project.Tasks = append(project.Tasks[:i], project.Tasks[i+1:]...)
			r.projects[projectID] = project
			r.logger.Debugf("Deleted task from repository: %s/%s", projectID, taskID)
			return nil
		}
	}

	return fmt.Errorf("task %s in project %s: %w", taskID, projectID, model.ErrNotFound)
}

func copyProject(p model.Project) model.Project {
	projectCopy := p
	projectCopy.Tasks = make([]model.Task, len(p.Tasks))
	copy(projectCopy.Tasks, p.Tasks)
	return projectCopy
}

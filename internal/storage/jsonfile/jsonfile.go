package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
)

// dataVersion is the persisted-state format version.
const dataVersion = "1.0"

// RepositoryConfig is the configuration for the JSON file repository.
type RepositoryConfig struct {
	Path   string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("data file path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.JSONFile"})
	return nil
}

// Repository is a storage.Repository implementation persisted to a single
// JSON file. State is kept in memory and flushed after every mutation, a
// missing file on startup means an empty store.
type Repository struct {
	path     string
	projects map[string]model.Project
	mu       sync.RWMutex
	logger   log.Logger
}

// NewRepository creates a new JSON file repository, loading any previously
// persisted state.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Repository{
		path:     cfg.Path,
		projects: make(map[string]model.Project),
		logger:   cfg.Logger,
	}

	if err := r.load(); err != nil {
		return nil, fmt.Errorf("could not load persisted state: %w", err)
	}

	return r, nil
}

// CreateProject creates a new project in the repository.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; ok {
		return fmt.Errorf("project with id %s: %w", p.ID, model.ErrAlreadyExists)
	}

	r.projects[p.ID] = copyProject(p)

	return r.save()
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

// ListProjects returns all projects ordered by creation time then ID.
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

	return r.save()
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

	return r.save()
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
			return r.save()
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
			return r.save()
		}
	}

	return fmt.Errorf("task %s in project %s: %w", taskID, projectID, model.ErrNotFound)
}

// Persisted state wire format. Field names and types are part of the
// contract: dates are ISO calendar strings, progress is an integer.

type fileData struct {
	Metadata fileMetadata           `json:"metadata"`
	Projects map[string]fileProject `json:"projects"`
}

type fileMetadata struct {
	LastSaved string `json:"last_saved"`
	Version   string `json:"version"`
}

type fileProject struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Owner     string     `json:"owner,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Tasks     []fileTask `json:"tasks"`
}

type fileTask struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Owner       string    `json:"owner,omitempty"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Repository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugf("No persisted state at %s, starting empty", r.path)
			return nil
		}
		return fmt.Errorf("could not read %s: %w", r.path, err)
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return fmt.Errorf("could not parse %s: %w", r.path, err)
	}

	for id, fp := range fd.Projects {
		project, err := fp.toModel()
		if err != nil {
			return fmt.Errorf("project %s: %w", id, err)
		}
		r.projects[id] = project
	}

	r.logger.Debugf("Loaded %d projects from %s", len(r.projects), r.path)
	return nil
}

// save flushes the whole state to disk. Callers must hold the write lock.
func (r *Repository) save() error {
	fd := fileData{
		Metadata: fileMetadata{
			LastSaved: time.Now().UTC().Format(time.RFC3339),
			Version:   dataVersion,
		},
		Projects: make(map[string]fileProject, len(r.projects)),
	}
	for id, p := range r.projects {
		fd.Projects[id] = toFileProject(p)
	}

	data, err := json.MarshalIndent(fd, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", r.path, err)
	}

	r.logger.Debugf("Persisted %d projects to %s", len(r.projects), r.path)
	return nil
}

func toFileProject(p model.Project) fileProject {
	fp := fileProject{
		ID:        p.ID,
		Name:      p.Name,
		Owner:     p.Owner,
		CreatedAt: p.CreatedAt.UTC(),
		Tasks:     make([]fileTask, 0, len(p.Tasks)),
	}
	for _, t := range p.Tasks {
		fp.Tasks = append(fp.Tasks, fileTask{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			StartDate:   model.FormatDate(t.StartDate),
			EndDate:     model.FormatDate(t.EndDate),
			Owner:       t.Owner,
			Progress:    t.Progress,
			CreatedAt:   t.CreatedAt.UTC(),
		})
	}
	return fp
}

func (fp fileProject) toModel() (model.Project, error) {
	p := model.Project{
		ID:        fp.ID,
		Name:      fp.Name,
		Owner:     fp.Owner,
		CreatedAt: fp.CreatedAt.UTC(),
		Tasks:     make([]model.Task, 0, len(fp.Tasks)),
	}

	for _, ft := range fp.Tasks {
		start, err := model.ParseDate(ft.StartDate)
		if err != nil {
			return model.Project{}, fmt.Errorf("task %s: %w", ft.ID, err)
		}
		end, err := model.ParseDate(ft.EndDate)
		if err != nil {
			return model.Project{}, fmt.Errorf("task %s: %w", ft.ID, err)
		}
		p.Tasks = append(p.Tasks, model.Task{
			ID:          ft.ID,
			Name:        ft.Name,
			Description: ft.Description,
			StartDate:   start,
			EndDate:     end,
			Owner:       ft.Owner,
			Progress:    ft.Progress,
			CreatedAt:   ft.CreatedAt.UTC(),
		})
	}

	return p, nil
}

func copyProject(p model.Project) model.Project {
	projectCopy := p
	projectCopy.Tasks = make([]model.Task, len(p.Tasks))
	copy(projectCopy.Tasks, p.Tasks)
	return projectCopy
}

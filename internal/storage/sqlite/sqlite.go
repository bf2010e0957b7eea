package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// CreateProject creates a new project in the repository.
func (r *Repository) CreateProject(ctx context.Context, p model.Project) error {
	query := `INSERT INTO projects (id, name, owner, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Owner, p.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: projects.") {
			return fmt.Errorf("project already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert project: %w", err)
	}

	for i, t := range p.Tasks {
		if err := r.insertTask(ctx, p.ID, t, i); err != nil {
			return err
		}
	}

	r.logger.Debugf("Created project in repository: %s", p.ID)
	return nil
}

// GetProject retrieves a project by ID, including all its tasks.
func (r *Repository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT id, name, owner, created_at FROM projects WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	project, err := r.scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query project: %w", err)
	}

	tasks, err := r.listTasks(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Tasks = tasks

	return &project, nil
}

// ListProjects returns all projects (without their tasks hydrated, only
// summaries need them counted) ordered by creation time then ID.
func (r *Repository) ListProjects(ctx context.Context) ([]model.Project, error) {
	query := `SELECT id, name, owner, created_at FROM projects ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range projects {
		tasks, err := r.listTasks(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Tasks = tasks
	}

	return projects, nil
}

// DeleteProject deletes a project, its tasks are removed by the FK cascade.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted project from repository: %s", id)
	return nil
}

// CreateTask appends a new task to a project.
func (r *Repository) CreateTask(ctx context.Context, projectID string, t model.Task) error {
	if err := r.projectExists(ctx, projectID); err != nil {
		return err
	}

	var position int
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE project_id = ?`, projectID)
	if err := row.Scan(&position); err != nil {
		return fmt.Errorf("could not compute task position: %w", err)
	}

	if err := r.insertTask(ctx, projectID, t, position); err != nil {
		return err
	}

	r.logger.Debugf("Created task in repository: %s/%s", projectID, t.ID)
	return nil
}

// GetTask retrieves a task by project and task ID.
func (r *Repository) GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error) {
	if err := r.projectExists(ctx, projectID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, start_date, end_date, owner, progress, created_at
		FROM tasks
		WHERE project_id = ? AND id = ?
	`

	row := r.db.QueryRowContext(ctx, query, projectID, taskID)
	task, err := r.scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s in project %s: %w", taskID, projectID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	return &task, nil
}

// ListTasks returns all tasks of a project in insertion order.
func (r *Repository) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	if err := r.projectExists(ctx, projectID); err != nil {
		return nil, err
	}

	return r.listTasks(ctx, projectID)
}

// UpdateTask replaces an existing task keeping its position in the project.
func (r *Repository) UpdateTask(ctx context.Context, projectID string, t model.Task) error {
	if err := r.projectExists(ctx, projectID); err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET
			name = ?,
			description = ?,
			start_date = ?,
			end_date = ?,
			owner = ?,
			progress = ?
		WHERE project_id = ? AND id = ?
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		t.Name,
		t.Description,
		model.FormatDate(t.StartDate),
		model.FormatDate(t.EndDate),
		t.Owner,
		t.Progress,
		projectID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s in project %s: %w", t.ID, projectID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated task in repository: %s/%s", projectID, t.ID)
	return nil
}

// DeleteTask removes a task from a project.
func (r *Repository) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := r.projectExists(ctx, projectID); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ? AND id = ?`, projectID, taskID)
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s in project %s: %w", taskID, projectID, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted task from repository: %s/%s", projectID, taskID)
	return nil
}

func (r *Repository) projectExists(ctx context.Context, projectID string) error {
	var one int
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, projectID)
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("could not query project: %w", err)
	}
	return nil
}

func (r *Repository) insertTask(ctx context.Context, projectID string, t model.Task, position int) error {
	query := `
		INSERT INTO tasks (id, project_id, name, description, start_date, end_date, owner, progress, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		t.ID,
		projectID,
		t.Name,
		t.Description,
		model.FormatDate(t.StartDate),
		model.FormatDate(t.EndDate),
		t.Owner,
		t.Progress,
		position,
		t.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	return nil
}

func (r *Repository) listTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	query := `
		SELECT id, name, description, start_date, end_date, owner, progress, created_at
		FROM tasks
		WHERE project_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := r.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanProject(s scanner) (model.Project, error) {
	var project model.Project
	var createdAt sql.NullInt64

	err := s.Scan(&project.ID, &project.Name, &project.Owner, &createdAt)
	if err != nil {
		return model.Project{}, err
	}

	if !createdAt.Valid {
		return model.Project{}, fmt.Errorf("created_at is required")
	}
	project.CreatedAt = timeFromUnix(createdAt.Int64)

	return project, nil
}

func (r *Repository) scanTask(s scanner) (model.Task, error) {
	var task model.Task
	var startDate, endDate string
	var createdAt sql.NullInt64

	err := s.Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&startDate,
		&endDate,
		&task.Owner,
		&task.Progress,
		&createdAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	task.StartDate, err = model.ParseDate(startDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid stored start date: %w", err)
	}
	task.EndDate, err = model.ParseDate(endDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid stored end date: %w", err)
	}

	if !createdAt.Valid {
		return model.Task{}, fmt.Errorf("created_at is required")
	}
	task.CreatedAt = timeFromUnix(createdAt.Int64)

	return task, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }

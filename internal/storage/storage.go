package storage

import (
	"context"

	"github.com/ganttmcp/ganttmcp/internal/model"
)

// Repository is the interface for project and task persistence.
type Repository interface {
	CreateProject(ctx context.Context, p model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateTask(ctx context.Context, projectID string, t model.Task) error
	GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, projectID string, t model.Task) error
	DeleteTask(ctx context.Context, projectID, taskID string) error
}

package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/memory"
)

func testProject(id, name string, createdAt time.Time) model.Project {
	return model.Project{
		ID:        id,
		Name:      name,
		Owner:     "alice",
		CreatedAt: createdAt,
	}
}

func testTask(id, name string) model.Task {
	return model.Task{
		ID:        id,
		Name:      name,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestRepositoryProjectCRUD(t *testing.T) {
	now := time.Now().UTC()

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  bool
	}{
		"Creating a project should work": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateProject(ctx, testProject("proj_1", "Launch", now))
				require.NoError(t, err)

				retrieved, err := repo.GetProject(ctx, "proj_1")
				require.NoError(t, err)
				assert.Equal(t, "proj_1", retrieved.ID)
				assert.Equal(t, "Launch", retrieved.Name)

				return nil
			},
		},

		"Creating duplicate project ID should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateProject(ctx, testProject("proj_1", "Launch", now))
				require.NoError(t, err)

				return repo.CreateProject(ctx, testProject("proj_1", "Other", now))
			},
			expErr: true,
		},

		"Getting a missing project should fail with not found": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				_, err := repo.GetProject(ctx, "proj_missing")
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},

		"Listing projects should be ordered by creation time then id": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateProject(ctx, testProject("proj_b", "Second", now.Add(time.Hour))))
				require.NoError(t, repo.CreateProject(ctx, testProject("proj_a", "First", now)))
				require.NoError(t, repo.CreateProject(ctx, testProject("proj_c", "Tied", now.Add(time.Hour))))

				projects, err := repo.ListProjects(ctx)
				require.NoError(t, err)
				require.Len(t, projects, 3)
				assert.Equal(t, "proj_a", projects[0].ID)
				assert.Equal(t, "proj_b", projects[1].ID)
				assert.Equal(t, "proj_c", projects[2].ID)

				return nil
			},
		},

		"Deleting a project twice should fail the second time": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateProject(ctx, testProject("proj_1", "Launch", now)))
				require.NoError(t, repo.DeleteProject(ctx, "proj_1"))

				err := repo.DeleteProject(ctx, "proj_1")
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},

		"Deleting a project should remove its tasks": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateProject(ctx, testProject("proj_1", "Launch", now)))
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_1", "Design")))
				require.NoError(t, repo.DeleteProject(ctx, "proj_1"))

				_, err := repo.GetTask(ctx, "proj_1", "task_1")
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(t, err)

			err = test.actions(context.TODO(), t, repo)

			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepositoryTaskCRUD(t *testing.T) {
	now := time.Now().UTC()

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  bool
	}{
		"Creating and getting a task should work": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_1", "Design")))

				retrieved, err := repo.GetTask(ctx, "proj_1", "task_1")
				require.NoError(t, err)
				assert.Equal(t, "Design", retrieved.Name)

				return nil
			},
		},

		"Creating a task on a missing project should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateTask(ctx, "proj_missing", testTask("task_1", "Design"))
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},

		"Creating a duplicate task id should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_1", "Design")))
				return repo.CreateTask(ctx, "proj_1", testTask("task_1", "Build"))
			},
			expErr: true,
		},

		"Listing tasks should preserve insertion order": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_z", "Last alphabetically")))
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_a", "First alphabetically")))

				tasks, err := repo.ListTasks(ctx, "proj_1")
				require.NoError(t, err)
				require.Len(t, tasks, 2)
				assert.Equal(t, "task_z", tasks[0].ID)
				assert.Equal(t, "task_a", tasks[1].ID)

				return nil
			},
		},

		"Updating a task should keep its position": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_1", "Design")))
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_2", "Build")))

				updated := testTask("task_1", "Design v2")
				updated.Progress = 80
				require.NoError(t, repo.UpdateTask(ctx, "proj_1", updated))

				tasks, err := repo.ListTasks(ctx, "proj_1")
				require.NoError(t, err)
				require.Len(t, tasks, 2)
				assert.Equal(t, "Design v2", tasks[0].Name)
				assert.Equal(t, 80, tasks[0].Progress)

				return nil
			},
		},

		"Updating a missing task should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.UpdateTask(ctx, "proj_1", testTask("task_missing", "Nope"))
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},

		"Deleting a task should remove only that task": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_1", "Design")))
				require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_2", "Build")))
				require.NoError(t, repo.DeleteTask(ctx, "proj_1", "task_1"))

				tasks, err := repo.ListTasks(ctx, "proj_1")
				require.NoError(t, err)
				require.Len(t, tasks, 1)
				assert.Equal(t, "task_2", tasks[0].ID)

				return nil
			},
		},

		"Deleting a missing task should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.DeleteTask(ctx, "proj_1", "task_missing")
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return err
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(t, err)
			require.NoError(t, repo.CreateProject(context.TODO(), testProject("proj_1", "Launch", now)))

			err = test.actions(context.TODO(), t, repo)

			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepositoryReturnsCopies(t *testing.T) {
	ctx := context.TODO()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	require.NoError(t, repo.CreateProject(ctx, testProject("proj_1", "Launch", time.Now().UTC())))
	require.NoError(t, repo.CreateTask(ctx, "proj_1", testTask("task_1", "Design")))

	project, err := repo.GetProject(ctx, "proj_1")
	require.NoError(t, err)
	project.Tasks[0].Name = "mutated"

	fresh, err := repo.GetProject(ctx, "proj_1")
	require.NoError(t, err)
	assert.Equal(t, "Design", fresh.Tasks[0].Name)
}

package jsonfile_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/jsonfile"
)

func newRepo(t *testing.T, path string) *jsonfile.Repository {
	t.Helper()
	repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{Path: path, Logger: log.Noop})
	require.NoError(t, err)
	return repo
}

func projectFixture() model.Project {
	return model.Project{
		ID:        "proj_1",
		Name:      "Launch",
		Owner:     "alice",
		CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Tasks: []model.Task{
			{
				ID:          "task_1",
				Name:        "Design",
				Description: "Design the landing page",
				StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				Owner:       "bob",
				Progress:    50,
				CreatedAt:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				ID:        "task_2",
				Name:      "Build",
				StartDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gantt_data.json")

	project := projectFixture()

	repo := newRepo(t, path)
	require.NoError(t, repo.CreateProject(ctx, model.Project{
		ID: project.ID, Name: project.Name, Owner: project.Owner, CreatedAt: project.CreatedAt,
	}))
	for _, task := range project.Tasks {
		require.NoError(t, repo.CreateTask(ctx, project.ID, task))
	}

	// A fresh repository over the same file must reconstruct an equal
	// project: same ids, same task fields, same order.
	reloaded := newRepo(t, path)
	got, err := reloaded.GetProject(ctx, "proj_1")
	require.NoError(t, err)
	assert.Equal(t, project, *got)
}

func TestRepositoryPersistedShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gantt_data.json")

	repo := newRepo(t, path)
	project := projectFixture()
	require.NoError(t, repo.CreateProject(ctx, model.Project{
		ID: project.ID, Name: project.Name, Owner: project.Owner, CreatedAt: project.CreatedAt,
	}))
	require.NoError(t, repo.CreateTask(ctx, project.ID, project.Tasks[0]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "metadata")
	require.Contains(t, raw, "projects")

	var metadata map[string]string
	require.NoError(t, json.Unmarshal(raw["metadata"], &metadata))
	assert.Equal(t, "1.0", metadata["version"])
	assert.NotEmpty(t, metadata["last_saved"])

	var projects map[string]struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Tasks []struct {
			ID        string `json:"id"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
			Progress  int    `json:"progress"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(raw["projects"], &projects))
	require.Contains(t, projects, "proj_1")
	assert.Equal(t, "proj_1", projects["proj_1"].ID)
	require.Len(t, projects["proj_1"].Tasks, 1)
	assert.Equal(t, "2024-01-01", projects["proj_1"].Tasks[0].StartDate)
	assert.Equal(t, "2024-01-10", projects["proj_1"].Tasks[0].EndDate)
	assert.Equal(t, 50, projects["proj_1"].Tasks[0].Progress)
}

func TestRepositoryMissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "gantt_data.json")

	repo := newRepo(t, path)
	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestRepositoryCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{Path: path, Logger: log.Noop})
	assert.Error(t, err)
}

func TestRepositoryMutationsPersist(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gantt_data.json")

	project := projectFixture()

	repo := newRepo(t, path)
	require.NoError(t, repo.CreateProject(ctx, model.Project{
		ID: project.ID, Name: project.Name, Owner: project.Owner, CreatedAt: project.CreatedAt,
	}))
	require.NoError(t, repo.CreateTask(ctx, project.ID, project.Tasks[0]))
	require.NoError(t, repo.CreateTask(ctx, project.ID, project.Tasks[1]))

	// Update and delete, then reload from disk.
	updated := project.Tasks[0]
	updated.Progress = 100
	require.NoError(t, repo.UpdateTask(ctx, project.ID, updated))
	require.NoError(t, repo.DeleteTask(ctx, project.ID, "task_2"))

	reloaded := newRepo(t, path)
	got, err := reloaded.GetProject(ctx, "proj_1")
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, 100, got.Tasks[0].Progress)

	// Deletes persist too.
	require.NoError(t, repo.DeleteProject(ctx, "proj_1"))
	reloaded = newRepo(t, path)
	_, err = reloaded.GetProject(ctx, "proj_1")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

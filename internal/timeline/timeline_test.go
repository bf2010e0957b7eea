package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/timeline"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		project  model.Project
		expChart func(t *testing.T, c timeline.Chart)
	}{
		"Project without tasks yields an empty chart": {
			project: model.Project{ID: "proj_1", Name: "Empty"},
			expChart: func(t *testing.T, c timeline.Chart) {
				assert.True(t, c.Empty())
				assert.Empty(t, c.Rows)
				assert.Equal(t, 0, c.SpanDays())
			},
		},

		"Two overlapping tasks get one row each, ordered by start date": {
			project: model.Project{
				ID:   "proj_1",
				Name: "Launch",
				Tasks: []model.Task{
					// Inserted out of chronological order on purpose.
					{ID: "task_b", Name: "B", StartDate: date(2024, 1, 3), EndDate: date(2024, 1, 8)},
					{ID: "task_a", Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)},
				},
			},
			expChart: func(t *testing.T, c timeline.Chart) {
				require.Len(t, c.Rows, 2)

				assert.Equal(t, date(2024, 1, 1), c.SpanStart)
				assert.Equal(t, date(2024, 1, 8), c.SpanEnd)
				assert.Equal(t, 8, c.SpanDays())

				a, b := c.Rows[0], c.Rows[1]
				assert.Equal(t, "task_a", a.TaskID)
				assert.Equal(t, 0, a.Index)
				assert.Equal(t, "task_b", b.TaskID)
				assert.Equal(t, 1, b.Index)

				// Span is 7 days wide: A ends 4 days in, B starts 2 days in.
				assert.InDelta(t, 0.0, a.StartFraction, 1e-9)
				assert.InDelta(t, 4.0/7.0, a.EndFraction, 1e-9)
				assert.InDelta(t, 2.0/7.0, b.StartFraction, 1e-9)
				assert.InDelta(t, 1.0, b.EndFraction, 1e-9)
			},
		},

		"Identical start dates are tie-broken by task id": {
			project: model.Project{
				ID:   "proj_1",
				Name: "Launch",
				Tasks: []model.Task{
					{ID: "task_z", Name: "Z", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 3)},
					{ID: "task_a", Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)},
				},
			},
			expChart: func(t *testing.T, c timeline.Chart) {
				require.Len(t, c.Rows, 2)
				assert.Equal(t, "task_a", c.Rows[0].TaskID)
				assert.Equal(t, "task_z", c.Rows[1].TaskID)
			},
		},

		"Single-day project widens the span instead of dividing by zero": {
			project: model.Project{
				ID:   "proj_1",
				Name: "One day",
				Tasks: []model.Task{
					{ID: "task_a", Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)},
				},
			},
			expChart: func(t *testing.T, c timeline.Chart) {
				require.Len(t, c.Rows, 1)
				assert.Equal(t, 0.0, c.Rows[0].StartFraction)
				assert.Equal(t, 0.0, c.Rows[0].EndFraction)
				assert.Equal(t, 1, c.SpanDays())
			},
		},

		"Row fields carry task data through unchanged": {
			project: model.Project{
				ID:   "proj_1",
				Name: "Launch",
				Tasks: []model.Task{
					{
						ID:        "task_a",
						Name:      "Design",
						Owner:     "alice",
						Progress:  50,
						StartDate: date(2024, 1, 1),
						EndDate:   date(2024, 1, 10),
					},
				},
			},
			expChart: func(t *testing.T, c timeline.Chart) {
				require.Len(t, c.Rows, 1)
				row := c.Rows[0]
				assert.Equal(t, "Design", row.Name)
				assert.Equal(t, "alice", row.Owner)
				assert.Equal(t, 50, row.Progress)
				assert.Equal(t, date(2024, 1, 1), row.StartDate)
				assert.Equal(t, date(2024, 1, 10), row.EndDate)
				assert.Equal(t, 10, row.DurationDays)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			chart := timeline.New(test.project)
			test.expChart(t, chart)
		})
	}
}

func TestNewDeterminism(t *testing.T) {
	project := model.Project{
		ID:   "proj_1",
		Name: "Launch",
		Tasks: []model.Task{
			{ID: "task_c", Name: "C", StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 9)},
			{ID: "task_a", Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)},
			{ID: "task_b", Name: "B", StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 4)},
		},
	}

	first := timeline.New(project)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, timeline.New(project))
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	project := model.Project{
		ID:   "proj_1",
		Name: "Launch",
		Tasks: []model.Task{
			{ID: "task_b", Name: "B", StartDate: date(2024, 1, 3), EndDate: date(2024, 1, 8)},
			{ID: "task_a", Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)},
		},
	}

	_ = timeline.New(project)

	// Insertion order of the project tasks is untouched by the sort.
	assert.Equal(t, "task_b", project.Tasks[0].ID)
	assert.Equal(t, "task_a", project.Tasks[1].ID)
}

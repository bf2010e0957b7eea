package taskupdate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/app/taskupdate"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/storagemock"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestService_Run(t *testing.T) {
	current := model.Task{
		ID: "task_1", Name: "Design", Owner: "alice", Progress: 50,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 10),
	}

	newName := "Design v2"
	newProgress := 75
	badProgress := 150
	newEnd := date(2024, 1, 20)
	threeDays := 3
	zeroDays := 0

	tests := map[string]struct {
		mock    func(m *storagemock.MockRepository)
		req     taskupdate.Request
		expTask func(t *testing.T, task *model.Task)
		expErr  error
	}{
		"updating some fields keeps the rest of the task": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&current, nil)
				m.On("UpdateTask", mock.Anything, "proj_1", mock.MatchedBy(func(task model.Task) bool {
					return task.Name == "Design v2" && task.Progress == 75
				})).Once().Return(nil)
			},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_1",
				Update: model.TaskUpdate{Name: &newName, Progress: &newProgress},
			},
			expTask: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Design v2", task.Name)
				assert.Equal(t, 75, task.Progress)
				assert.Equal(t, "alice", task.Owner)
				assert.Equal(t, date(2024, 1, 1), task.StartDate)
				assert.Equal(t, date(2024, 1, 10), task.EndDate)
			},
		},

		"out of range progress rejects the update without writing": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&current, nil)
			},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_1",
				Update: model.TaskUpdate{Progress: &badProgress},
			},
			expErr: model.ErrNotValid,
		},

		"end date moving before start date rejects the whole update": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&current, nil)
			},
			req: func() taskupdate.Request {
				before := date(2023, 12, 31)
				return taskupdate.Request{
					ProjectID: "proj_1", TaskID: "task_1",
					Update: model.TaskUpdate{EndDate: &before},
				}
			}(),
			expErr: model.ErrNotValid,
		},

		"duration computes a new end date from the current start": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&current, nil)
				m.On("UpdateTask", mock.Anything, "proj_1", mock.MatchedBy(func(task model.Task) bool {
					return task.EndDate.Equal(date(2024, 1, 3))
				})).Once().Return(nil)
			},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_1",
				DurationDays: &threeDays,
			},
			expTask: func(t *testing.T, task *model.Task) {
				assert.Equal(t, date(2024, 1, 3), task.EndDate)
			},
		},

		"duration computes the end date from an updated start": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&current, nil)
				m.On("UpdateTask", mock.Anything, "proj_1", mock.MatchedBy(func(task model.Task) bool {
					return task.StartDate.Equal(date(2024, 2, 1)) && task.EndDate.Equal(date(2024, 2, 3))
				})).Once().Return(nil)
			},
			req: func() taskupdate.Request {
				newStart := date(2024, 2, 1)
				return taskupdate.Request{
					ProjectID: "proj_1", TaskID: "task_1",
					Update:       model.TaskUpdate{StartDate: &newStart},
					DurationDays: &threeDays,
				}
			}(),
			expTask: func(t *testing.T, task *model.Task) {
				assert.Equal(t, date(2024, 2, 3), task.EndDate)
			},
		},

		"end date and duration together should fail": {
			mock: func(m *storagemock.MockRepository) {},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_1",
				Update:       model.TaskUpdate{EndDate: &newEnd},
				DurationDays: &threeDays,
			},
			expErr: model.ErrNotValid,
		},

		"non-positive duration should fail": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&current, nil)
			},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_1",
				DurationDays: &zeroDays,
			},
			expErr: model.ErrNotValid,
		},

		"empty update should fail": {
			mock: func(m *storagemock.MockRepository) {},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_1",
			},
			expErr: model.ErrNotValid,
		},

		"missing task should fail with not found": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_404").Once().Return(nil, model.ErrNotFound)
			},
			req: taskupdate.Request{
				ProjectID: "proj_1", TaskID: "task_404",
				Update: model.TaskUpdate{Name: &newName},
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			mrepo := &storagemock.MockRepository{}
			test.mock(mrepo)

			svc, err := taskupdate.NewService(taskupdate.ServiceConfig{Repository: mrepo})
			require.NoError(err)

			task, err := svc.Run(context.Background(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				require.NoError(err)
				test.expTask(t, task)
			}

			mrepo.AssertExpectations(t)
		})
	}
}

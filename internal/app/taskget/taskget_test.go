package taskget_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/app/taskget"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/storagemock"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestService_Run(t *testing.T) {
	design := model.Task{
		ID: "task_1", Name: "Design",
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 10), Progress: 50,
	}
	launch := model.Project{
		ID: "proj_1", Name: "Launch", Owner: "alice",
		CreatedAt: date(2024, 1, 1),
		Tasks:     []model.Task{design},
	}

	tests := map[string]struct {
		mock   func(m *storagemock.MockRepository)
		req    taskget.Request
		expRes *taskget.Response
		expErr error
	}{
		"existing task is returned with its fields and project context": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetProject", mock.Anything, "proj_1").Once().Return(&launch, nil)
			},
			req: taskget.Request{ProjectID: "proj_1", TaskID: "task_1"},
			expRes: &taskget.Response{
				Task:    design,
				Project: launch.Summary(),
			},
		},

		"missing task should fail with not found": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetProject", mock.Anything, "proj_1").Once().Return(&launch, nil)
			},
			req:    taskget.Request{ProjectID: "proj_1", TaskID: "task_404"},
			expErr: model.ErrNotFound,
		},

		"missing project should fail with not found": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetProject", mock.Anything, "proj_404").Once().Return(nil, model.ErrNotFound)
			},
			req:    taskget.Request{ProjectID: "proj_404", TaskID: "task_1"},
			expErr: model.ErrNotFound,
		},

		"empty ids should fail with validation error": {
			mock:   func(m *storagemock.MockRepository) {},
			req:    taskget.Request{},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			mrepo := &storagemock.MockRepository{}
			test.mock(mrepo)

			svc, err := taskget.NewService(taskget.ServiceConfig{Repository: mrepo})
			require.NoError(err)

			result, err := svc.Run(context.Background(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				require.NoError(err)
				assert.Equal(t, test.expRes, result)
			}

			mrepo.AssertExpectations(t)
		})
	}
}

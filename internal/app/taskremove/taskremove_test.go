package taskremove_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/app/taskremove"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/storagemock"
)

func TestService_Run(t *testing.T) {
	design := model.Task{
		ID: "task_1", Name: "Design",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	tests := map[string]struct {
		mock   func(m *storagemock.MockRepository)
		req    taskremove.Request
		expRes *model.Task
		expErr error
	}{
		"removing an existing task returns the deleted task": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&design, nil)
				m.On("DeleteTask", mock.Anything, "proj_1", "task_1").Once().Return(nil)
			},
			req:    taskremove.Request{ProjectID: "proj_1", TaskID: "task_1"},
			expRes: &design,
		},

		"missing task should fail with not found": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_404").Once().Return(nil, model.ErrNotFound)
			},
			req:    taskremove.Request{ProjectID: "proj_1", TaskID: "task_404"},
			expErr: model.ErrNotFound,
		},

		"empty ids should fail with validation error": {
			mock:   func(m *storagemock.MockRepository) {},
			req:    taskremove.Request{},
			expErr: model.ErrNotValid,
		},

		"delete error should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetTask", mock.Anything, "proj_1", "task_1").Once().Return(&design, nil)
				m.On("DeleteTask", mock.Anything, "proj_1", "task_1").Once().Return(fmt.Errorf("database error"))
			},
			req:    taskremove.Request{ProjectID: "proj_1", TaskID: "task_1"},
			expErr: fmt.Errorf("something"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			mrepo := &storagemock.MockRepository{}
			test.mock(mrepo)

			svc, err := taskremove.NewService(taskremove.ServiceConfig{Repository: mrepo})
			require.NoError(err)

			result, err := svc.Run(context.Background(), test.req)

			switch {
			case test.expErr == model.ErrNotFound, test.expErr == model.ErrNotValid:
				assert.ErrorIs(t, err, test.expErr)
			case test.expErr != nil:
				require.Error(err)
			default:
				require.NoError(err)
				assert.Equal(t, test.expRes, result)
			}

			mrepo.AssertExpectations(t)
		})
	}
}

package projectlist_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ganttmcp/ganttmcp/internal/app/projectlist"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/storage/storagemock"
)

func TestService_Run(t *testing.T) {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

	alice := "alice"

	tests := map[string]struct {
		mock      func(m *storagemock.MockRepository)
		req       projectlist.Request
		expResult []model.ProjectSummary
		expErr    bool
	}{
		"list all projects without filter": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListProjects", mock.Anything).Once().Return([]model.Project{
					{ID: "proj_1", Name: "Launch", Owner: "alice", CreatedAt: createdAt, Tasks: []model.Task{{ID: "task_1"}}},
					{ID: "proj_2", Name: "Cleanup", Owner: "bob", CreatedAt: createdAt},
				}, nil)
			},
			req: projectlist.Request{},
			expResult: []model.ProjectSummary{
				{ID: "proj_1", Name: "Launch", Owner: "alice", TaskCount: 1, CreatedAt: createdAt},
				{ID: "proj_2", Name: "Cleanup", Owner: "bob", TaskCount: 0, CreatedAt: createdAt},
			},
		},

		"filter by owner": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListProjects", mock.Anything).Once().Return([]model.Project{
					{ID: "proj_1", Name: "Launch", Owner: "alice", CreatedAt: createdAt},
					{ID: "proj_2", Name: "Cleanup", Owner: "bob", CreatedAt: createdAt},
				}, nil)
			},
			req: projectlist.Request{OwnerFilter: &alice},
			expResult: []model.ProjectSummary{
				{ID: "proj_1", Name: "Launch", Owner: "alice", TaskCount: 0, CreatedAt: createdAt},
			},
		},

		"empty repository returns empty list": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListProjects", mock.Anything).Once().Return([]model.Project{}, nil)
			},
			req:       projectlist.Request{},
			expResult: []model.ProjectSummary{},
		},

		"repository error should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListProjects", mock.Anything).Once().Return(nil, fmt.Errorf("database error"))
			},
			req:    projectlist.Request{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			mrepo := &storagemock.MockRepository{}
			test.mock(mrepo)

			svc, err := projectlist.NewService(projectlist.ServiceConfig{Repository: mrepo})
			require.NoError(err)

			result, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				require.Error(err)
			} else {
				require.NoError(err)
				assert.Equal(t, test.expResult, result)
			}

			mrepo.AssertExpectations(t)
		})
	}
}

package io

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanYAMLRepository_GetPlan(t *testing.T) {
	tests := map[string]struct {
		fs      fstest.MapFS
		path    string
		expPlan Plan
		expErr  bool
	}{
		"Valid plan with tasks should load successfully": {
			fs: fstest.MapFS{
				"plan.yaml": &fstest.MapFile{
					Data: []byte(`name: Launch
owner: alice
tasks:
  - name: Design
    description: Landing page
    start_date: "2024-01-01"
    end_date: "2024-01-10"
    owner: bob
    progress: 50
  - name: Build
    start_date: "2024-01-05"
    duration_days: 10
`),
				},
			},
			path: "plan.yaml",
			expPlan: Plan{
				Name:  "Launch",
				Owner: "alice",
				Tasks: []PlanTask{
					{
						Name:        "Design",
						Description: "Landing page",
						StartDate:   "2024-01-01",
						EndDate:     "2024-01-10",
						Owner:       "bob",
						Progress:    50,
					},
					{
						Name:         "Build",
						StartDate:    "2024-01-05",
						DurationDays: 10,
					},
				},
			},
		},
		"Plan without tasks should load successfully": {
			fs: fstest.MapFS{
				"plan.yaml": &fstest.MapFile{
					Data: []byte(`name: Launch
`),
				},
			},
			path: "plan.yaml",
			expPlan: Plan{
				Name:  "Launch",
				Tasks: []PlanTask{},
			},
		},
		"Plan without a name should fail": {
			fs: fstest.MapFS{
				"plan.yaml": &fstest.MapFile{
					Data: []byte(`owner: alice
`),
				},
			},
			path:   "plan.yaml",
			expErr: true,
		},
		"Task without a name should fail": {
			fs: fstest.MapFS{
				"plan.yaml": &fstest.MapFile{
					Data: []byte(`name: Launch
tasks:
  - start_date: "2024-01-01"
`),
				},
			},
			path:   "plan.yaml",
			expErr: true,
		},
		"Task with both end_date and duration_days should fail": {
			fs: fstest.MapFS{
				"plan.yaml": &fstest.MapFile{
					Data: []byte(`name: Launch
tasks:
  - name: Design
    start_date: "2024-01-01"
    end_date: "2024-01-10"
    duration_days: 10
`),
				},
			},
			path:   "plan.yaml",
			expErr: true,
		},
		"Missing file should fail": {
			fs:     fstest.MapFS{},
			path:   "missing.yaml",
			expErr: true,
		},
		"Invalid YAML should fail": {
			fs: fstest.MapFS{
				"plan.yaml": &fstest.MapFile{
					Data: []byte(`{not yaml`),
				},
			},
			path:   "plan.yaml",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := NewPlanYAMLRepository(test.fs)

			plan, err := repo.GetPlan(context.TODO(), test.path)

			if test.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expPlan, plan)
			}
		})
	}
}

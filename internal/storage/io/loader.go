package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/ganttmcp/ganttmcp/internal/model"
)

// PlanYAMLRepository loads project plans from YAML files.
type PlanYAMLRepository struct {
	fs fs.FS
}

// NewPlanYAMLRepository creates a new YAML plan repository.
func NewPlanYAMLRepository(filesystem fs.FS) *PlanYAMLRepository {
	return &PlanYAMLRepository{fs: filesystem}
}

// GetPlan loads a project plan from a YAML file and returns a validated plan.
func (r *PlanYAMLRepository) GetPlan(ctx context.Context, path string) (Plan, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return Plan{}, fmt.Errorf("reading plan file: %w", err)
	}

	if ctx.Err() != nil {
		return Plan{}, ctx.Err()
	}

	var plan planYAML
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("parsing YAML: %w", err)
	}

	return plan.toPlan()
}

// Plan is a parsed project plan ready to be created. Task entries carry no
// ids, those are assigned on creation.
type Plan struct {
	Name  string
	Owner string
	Tasks []PlanTask
}

// PlanTask is a single task entry of a plan.
type PlanTask struct {
	Name         string
	Description  string
	StartDate    string
	EndDate      string
	DurationDays int
	Owner        string
	Progress     int
}

// planYAML represents the YAML structure for a project plan.
type planYAML struct {
	Name  string         `yaml:"name"`
	Owner string         `yaml:"owner"`
	Tasks []planTaskYAML `yaml:"tasks"`
}

// planTaskYAML represents the YAML structure for a plan task.
type planTaskYAML struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	StartDate    string `yaml:"start_date"`
	EndDate      string `yaml:"end_date"`
	DurationDays int    `yaml:"duration_days"`
	Owner        string `yaml:"owner"`
	Progress     int    `yaml:"progress"`
}

func (p planYAML) toPlan() (Plan, error) {
	if p.Name == "" {
		return Plan{}, fmt.Errorf("plan name is required: %w", model.ErrNotValid)
	}

	plan := Plan{
		Name:  p.Name,
		Owner: p.Owner,
		Tasks: make([]PlanTask, 0, len(p.Tasks)),
	}

	for i, t := range p.Tasks {
		if t.Name == "" {
			return Plan{}, fmt.Errorf("task %d: name is required: %w", i, model.ErrNotValid)
		}
		if t.EndDate != "" && t.DurationDays != 0 {
			return Plan{}, fmt.Errorf("task %d: end_date and duration_days can't be used together: %w", i, model.ErrNotValid)
		}
		plan.Tasks = append(plan.Tasks, PlanTask{
			Name:         t.Name,
			Description:  t.Description,
			StartDate:    t.StartDate,
			EndDate:      t.EndDate,
			DurationDays: t.DurationDays,
			Owner:        t.Owner,
			Progress:     t.Progress,
		})
	}

	return plan, nil
}

package model

import (
	"fmt"
	"time"
)

// Project represents a named collection of tasks, one Gantt chart.
type Project struct {
	ID        string
	Name      string
	Owner     string
	CreatedAt time.Time

	// Tasks keeps insertion order. Order has no scheduling meaning.
	Tasks []Task
}

// Validate validates the project invariants, including all contained tasks.
func (p Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("project id is required: %w", ErrNotValid)
	}
	if p.Name == "" {
		return fmt.Errorf("project name is required: %w", ErrNotValid)
	}

	seen := make(map[string]struct{}, len(p.Tasks))
	for _, t := range p.Tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("duplicated task id %s: %w", t.ID, ErrNotValid)
		}
		seen[t.ID] = struct{}{}
	}

	return nil
}

// Task returns the task with the given id.
func (p Project) Task(taskID string) (*Task, error) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			taskCopy := p.Tasks[i]
			return &taskCopy, nil
		}
	}
	return nil, fmt.Errorf("task %s in project %s: %w", taskID, p.ID, ErrNotFound)
}

// ProjectSummary is the read model used by project listings.
type ProjectSummary struct {
	ID        string
	Name      string
	Owner     string
	TaskCount int
	CreatedAt time.Time
}

// Summary returns the project list view.
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:        p.ID,
		Name:      p.Name,
		Owner:     p.Owner,
		TaskCount: len(p.Tasks),
		CreatedAt: p.CreatedAt,
	}
}

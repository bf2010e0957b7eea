package model

import (
	"fmt"
	"time"
)

// DateFormat is the calendar date layout used on every boundary (CLI flags,
// tool-call arguments, persisted state).
const DateFormat = "2006-01-02"

// ParseDate parses an ISO calendar date (YYYY-MM-DD) into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, ErrNotValid)
	}
	return t.UTC(), nil
}

// FormatDate formats a date as an ISO calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// Task represents a scheduled unit of work inside a project.
type Task struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time // Normalized to UTC midnight.
	EndDate     time.Time // Normalized to UTC midnight, inclusive.
	Owner       string
	Progress    int // Completion percentage, 0-100.
	CreatedAt   time.Time
}

// DurationDays returns the task duration in days, inclusive of start and end.
func (t Task) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}

// Validate validates the task invariants.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if t.Name == "" {
		return fmt.Errorf("task name is required: %w", ErrNotValid)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("task start and end dates are required: %w", ErrNotValid)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("task end date %s is before start date %s: %w",
			FormatDate(t.EndDate), FormatDate(t.StartDate), ErrNotValid)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task progress %d out of 0-100 range: %w", t.Progress, ErrNotValid)
	}
	return nil
}

// TaskUpdate is a partial task update. Nil fields are left untouched, the
// merged result is validated as a whole before being applied.
type TaskUpdate struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Owner       *string
	Progress    *int
}

// Empty returns true when the update carries no fields.
func (u TaskUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.StartDate == nil &&
		u.EndDate == nil && u.Owner == nil && u.Progress == nil
}

// Apply merges the update into a task and validates the merged record. The
// original task is never mutated: an invalid update returns the zero task.
func (u TaskUpdate) Apply(t Task) (Task, error) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.StartDate != nil {
		t.StartDate = u.StartDate.UTC()
	}
	if u.EndDate != nil {
		t.EndDate = u.EndDate.UTC()
	}
	if u.Owner != nil {
		t.Owner = *u.Owner
	}
	if u.Progress != nil {
		t.Progress = *u.Progress
	}

	if err := t.Validate(); err != nil {
		return Task{}, fmt.Errorf("invalid task update: %w", err)
	}

	return t, nil
}

package timeline

import (
	"sort"
	"time"

	"github.com/ganttmcp/ganttmcp/internal/model"
)

// Row is the positioned output for a single task: its vertical slot and its
// horizontal position as fractions of the project span.
type Row struct {
	TaskID string
	Index  int

	// StartFraction and EndFraction are in [0, 1], relative to the span.
	StartFraction float64
	EndFraction   float64

	// Fields carried through for label rendering.
	Name         string
	Owner        string
	Progress     int
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
}

// Chart is the layout of a whole project: the positioned rows plus the
// overall date span they are positioned against. It is recomputed on every
// render request and never stored.
type Chart struct {
	Rows      []Row
	SpanStart time.Time
	SpanEnd   time.Time
}

// Empty returns true when the chart has no rows (zero-task project).
func (c Chart) Empty() bool { return len(c.Rows) == 0 }

// SpanDays returns the number of calendar days of the span, inclusive of
// both ends. Zero for an empty chart.
func (c Chart) SpanDays() int {
	if c.Empty() {
		return 0
	}
	return daysBetween(c.SpanStart, c.SpanEnd) + 1
}

/// New computes the layout of a project. The result is deterministic: tasks
// are ordered by start date and ties broken by task id, never by insertion
// or map iteration order. A project without tasks yields an empty chart.
func New(p model.Project) Chart {
	if len(p.Tasks) == 0 {
		return Chart{}
	}

	spanStart := p.Tasks[0].StartDate
	spanEnd := p.Tasks[0].EndDate
	for _, t := range p.Tasks[1:] {
		if t.StartDate.Before(spanStart) {
			spanStart = t.StartDate
		}
		if t.EndDate.After(spanEnd) {
			spanEnd = t.EndDate
		}
	}

	tasks := make([]model.Task, len(p.Tasks))
	copy(tasks, p.Tasks)
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].StartDate.Equal(tasks[j].StartDate) {
			return tasks[i].StartDate.Before(tasks[j].StartDate)
		}
		return tasks[i].ID < tasks[j].ID
	})

	// A single-day span is widened to one day so fractions don't divide by
	// zero, single-day tasks then cover the full width.
	duration := daysBetween(spanStart, spanEnd)
	if duration == 0 {
		duration = 1
	}

	rows := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, Row{
			TaskID:        t.ID,
			Index:         i,
			StartFraction: clamp(float64(daysBetween(spanStart, t.StartDate)) / float64(duration)),
			EndFraction:   clamp(float64(daysBetween(spanStart, t.EndDate)) / float64(duration)),
			Name:          t.Name,
			Owner:         t.Owner,
			Progress:      t.Progress,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			DurationDays:  t.DurationDays(),
		})
	}

	return Chart{
		Rows:      rows,
		SpanStart: spanStart,
		SpanEnd:   spanEnd,
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ganttmcp/ganttmcp/internal/model"
)

// JSONPrinter prints project and task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// projectListItem represents a project in the list output.
type projectListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
}

// projectOutput represents the full project output.
type projectOutput struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Owner     string       `json:"owner"`
	CreatedAt time.Time    `json:"created_at"`
	Tasks     []taskOutput `json:"tasks"`
}

// taskOutput represents a task in JSON output.
type taskOutput struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Owner        string    `json:"owner"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"created_at"`
}

// taskDetailOutput represents a task with its project context.
type taskDetailOutput struct {
	taskOutput
	Project projectListItem `json:"project"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func toTaskOutput(t model.Task) taskOutput {
	return taskOutput{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Owner:        t.Owner,
		StartDate:    model.FormatDate(t.StartDate),
		EndDate:      model.FormatDate(t.EndDate),
		DurationDays: t.DurationDays(),
		Progress:     t.Progress,
		CreatedAt:    t.CreatedAt.UTC(),
	}
}

func toProjectListItem(p model.ProjectSummary) projectListItem {
	return projectListItem{
		ID:        p.ID,
		Name:      p.Name,
		Owner:     p.Owner,
		TaskCount: p.TaskCount,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

// PrintProjectList prints project summaries in JSON format.
func (j *JSONPrinter) PrintProjectList(projects []model.ProjectSummary) error {
	items := make([]projectListItem, len(projects))
	for i, p := range projects {
		items[i] = toProjectListItem(p)
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintProject prints a full project in JSON format.
func (j *JSONPrinter) PrintProject(project model.Project) error {
	output := projectOutput{
		ID:        project.ID,
		Name:      project.Name,
		Owner:     project.Owner,
		CreatedAt: project.CreatedAt.UTC(),
		Tasks:     make([]taskOutput, len(project.Tasks)),
	}
	for i, t := range project.Tasks {
		output.Tasks[i] = toTaskOutput(t)
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintTaskList prints tasks in JSON format.
func (j *JSONPrinter) PrintTaskList(tasks []model.Task) error {
	items := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskOutput(t)
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintTask prints detailed task information in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task, project model.ProjectSummary) error {
	output := taskDetailOutput{
		taskOutput: toTaskOutput(task),
		Project:    toProjectListItem(project),
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(messageOutput{Message: msg})
}

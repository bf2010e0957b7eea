package printer

import "github.com/ganttmcp/ganttmcp/internal/model"

// Printer knows how to print project and task information in different formats.
type Printer interface {
	PrintProjectList(projects []model.ProjectSummary) error
	PrintProject(project model.Project) error
	PrintTaskList(tasks []model.Task) error
	PrintTask(task model.Task, project model.ProjectSummary) error
	PrintMessage(msg string) error
}

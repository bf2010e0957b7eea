package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ganttmcp/ganttmcp/internal/model"
)

// TablePrinter prints project and task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintProjectList prints project summaries in a table format.
func (t *TablePrinter) PrintProjectList(projects []model.ProjectSummary) error {
	if len(projects) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tOWNER\tTASKS\tCREATED")

	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Owner, p.TaskCount, TimeAgo(p.CreatedAt))
	}

	return nil
}

// PrintProject prints a project and its task table.
func (t *TablePrinter) PrintProject(project model.Project) error {
	fmt.Fprintf(t.writer, "Name:     %s\n", project.Name)
	fmt.Fprintf(t.writer, "ID:       %s\n", project.ID)
	fmt.Fprintf(t.writer, "Owner:    %s\n", project.Owner)
	fmt.Fprintf(t.writer, "Tasks:    %d\n", len(project.Tasks))
	fmt.Fprintf(t.writer, "Created:  %s\n", FormatTimestamp(project.CreatedAt))

	if len(project.Tasks) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	return t.PrintTaskList(project.Tasks)
}

// PrintTaskList prints tasks in a table format.
func (t *TablePrinter) PrintTaskList(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tOWNER\tSTART\tEND\tDAYS\tPROGRESS")

	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d%%\n",
			task.ID,
			task.Name,
			task.Owner,
			model.FormatDate(task.StartDate),
			model.FormatDate(task.EndDate),
			task.DurationDays(),
			task.Progress,
		)
	}

	return nil
}

// PrintTask prints detailed task information.
func (t *TablePrinter) PrintTask(task model.Task, project model.ProjectSummary) error {
	fmt.Fprintf(t.writer, "Name:         %s\n", task.Name)
	fmt.Fprintf(t.writer, "ID:           %s\n", task.ID)
	if task.Description != "" {
		fmt.Fprintf(t.writer, "Description:  %s\n", task.Description)
	}
	fmt.Fprintf(t.writer, "Owner:        %s\n", task.Owner)
	fmt.Fprintf(t.writer, "Start:        %s\n", model.FormatDate(task.StartDate))
	fmt.Fprintf(t.writer, "End:          %s\n", model.FormatDate(task.EndDate))
	fmt.Fprintf(t.writer, "Duration:     %d days\n", task.DurationDays())
	fmt.Fprintf(t.writer, "Progress:     %d%%\n", task.Progress)
	fmt.Fprintf(t.writer, "Created:      %s\n", FormatTimestamp(task.CreatedAt))
	fmt.Fprintf(t.writer, "Project:      %s (%s)\n", project.Name, project.ID)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

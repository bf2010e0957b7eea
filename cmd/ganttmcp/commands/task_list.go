package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/tasklist"
	"github.com/ganttmcp/ganttmcp/internal/printer"
)

// TaskListCommand lists the tasks of a project.
type TaskListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	format    string
}

// NewTaskListCommand returns the task list command.
func NewTaskListCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskListCommand {
	c := &TaskListCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("list", "List the tasks of a project.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := tasklist.NewService(tasklist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	tasks, err := svc.Run(ctx, tasklist.Request{ProjectID: c.projectID})
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTaskList(tasks); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}

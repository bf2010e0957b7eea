package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/taskget"
	"github.com/ganttmcp/ganttmcp/internal/printer"
)

// TaskGetCommand shows the details of a single task.
type TaskGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	taskID    string
	format    string
}

// NewTaskGetCommand returns the task get command.
func NewTaskGetCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskGetCommand {
	c := &TaskGetCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("get", "Show the details of a task.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskGetCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := taskget.NewService(taskget.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, taskget.Request{ProjectID: c.projectID, TaskID: c.taskID})
	if err != nil {
		return fmt.Errorf("could not get task: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTask(resp.Task, resp.Project); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}

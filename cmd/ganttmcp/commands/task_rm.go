package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/taskremove"
)

// TaskRmCommand removes a task from a project.
type TaskRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	taskID    string
}

// NewTaskRmCommand returns the task rm command.
func NewTaskRmCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskRmCommand {
	c := &TaskRmCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("rm", "Remove a task from a project.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)

	return c
}

func (c TaskRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := taskremove.NewService(taskremove.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskremove.Request{ProjectID: c.projectID, TaskID: c.taskID})
	if err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task removed: %s (%s)\n", task.Name, task.ID)
	return nil
}

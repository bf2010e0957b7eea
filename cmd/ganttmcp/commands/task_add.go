package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/taskadd"
	"github.com/ganttmcp/ganttmcp/internal/model"
)

// TaskAddCommand adds a task to a project.
type TaskAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID    string
	name         string
	description  string
	owner        string
	startDate    string
	endDate      string
	durationDays int
	progress     int
}

// NewTaskAddCommand returns the task add command.
func NewTaskAddCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskAddCommand {
	c := &TaskAddCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("add", "Add a task to a project.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Arg("name", "Name of the task.").Required().StringVar(&c.name)
	c.Cmd.Flag("description", "Task description.").StringVar(&c.description)
	c.Cmd.Flag("owner", "Person responsible for the task.").StringVar(&c.owner)
	c.Cmd.Flag("start", "Start date (YYYY-MM-DD), defaults to today.").StringVar(&c.startDate)
	c.Cmd.Flag("end", "End date (YYYY-MM-DD), mutually exclusive with --duration.").StringVar(&c.endDate)
	c.Cmd.Flag("duration", "Task duration in days, includes the start day.").IntVar(&c.durationDays)
	c.Cmd.Flag("progress", "Completion percentage (0-100).").IntVar(&c.progress)

	return c
}

func (c TaskAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskAddCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := taskadd.NewService(taskadd.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := taskadd.Request{
		ProjectID:   c.projectID,
		Name:        c.name,
		Description: c.description,
		Owner:       c.owner,
		Progress:    c.progress,
	}

	if c.startDate != "" {
		start, err := model.ParseDate(c.startDate)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		req.StartDate = &start
	}
	if c.endDate != "" {
		end, err := model.ParseDate(c.endDate)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		req.EndDate = &end
	}
	if c.durationDays != 0 {
		req.DurationDays = &c.durationDays
	}

	task, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task added: %s (%s) %s..%s\n",
		task.Name, task.ID, model.FormatDate(task.StartDate), model.FormatDate(task.EndDate))
	return nil
}

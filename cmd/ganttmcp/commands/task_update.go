package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/taskupdate"
	"github.com/ganttmcp/ganttmcp/internal/model"
)

// TaskUpdateCommand updates fields of an existing task.
type TaskUpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	taskID    string

	name           string
	nameSet        bool
	description    string
	descriptionSet bool
	owner          string
	ownerSet       bool
	progress       int
	progressSet    bool
	startDate      string
	endDate        string
	durationDays   int
}

// NewTaskUpdateCommand returns the task update command.
func NewTaskUpdateCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskUpdateCommand {
	c := &TaskUpdateCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("update", "Update fields of a task.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("name", "New task name.").IsSetByUser(&c.nameSet).StringVar(&c.name)
	c.Cmd.Flag("description", "New task description.").IsSetByUser(&c.descriptionSet).StringVar(&c.description)
	c.Cmd.Flag("owner", "New task owner.").IsSetByUser(&c.ownerSet).StringVar(&c.owner)
	c.Cmd.Flag("progress", "New completion percentage (0-100).").IsSetByUser(&c.progressSet).IntVar(&c.progress)
	c.Cmd.Flag("start", "New start date (YYYY-MM-DD).").StringVar(&c.startDate)
	c.Cmd.Flag("end", "New end date (YYYY-MM-DD), mutually exclusive with --duration.").StringVar(&c.endDate)
	c.Cmd.Flag("duration", "New duration in days from the start date.").IntVar(&c.durationDays)

	return c
}

func (c TaskUpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskUpdateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := taskupdate.NewService(taskupdate.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := taskupdate.Request{
		ProjectID: c.projectID,
		TaskID:    c.taskID,
	}

	if c.nameSet {
		req.Update.Name = &c.name
	}
	if c.descriptionSet {
		req.Update.Description = &c.description
	}
	if c.ownerSet {
		req.Update.Owner = &c.owner
	}
	if c.progressSet {
		req.Update.Progress = &c.progress
	}
	if c.startDate != "" {
		start, err := model.ParseDate(c.startDate)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		req.Update.StartDate = &start
	}
	if c.endDate != "" {
		end, err := model.ParseDate(c.endDate)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		req.Update.EndDate = &end
	}
	if c.durationDays != 0 {
		req.DurationDays = &c.durationDays
	}

	task, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Task updated: %s (%s) %s..%s %d%%\n",
		task.Name, task.ID, model.FormatDate(task.StartDate), model.FormatDate(task.EndDate), task.Progress)
	return nil
}

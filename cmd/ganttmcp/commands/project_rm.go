package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/projectremove"
)

// ProjectRmCommand removes a project and all its tasks.
type ProjectRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
}

// NewProjectRmCommand returns the project rm command.
func NewProjectRmCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectRmCommand {
	c := &ProjectRmCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("rm", "Remove a project and all its tasks.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)

	return c
}

func (c ProjectRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := projectremove.NewService(projectremove.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	summary, err := svc.Run(ctx, projectremove.Request{ProjectID: c.projectID})
	if err != nil {
		return fmt.Errorf("could not remove project: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Project removed: %s (%d tasks)\n", summary.Name, summary.TaskCount)
	return nil
}

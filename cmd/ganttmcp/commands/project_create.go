package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/projectcreate"
)

// ProjectCreateCommand creates a new project.
type ProjectCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name  string
	owner string
}

// NewProjectCreateCommand returns the project create command.
func NewProjectCreateCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectCreateCommand {
	c := &ProjectCreateCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("create", "Create a new project.")
	c.Cmd.Arg("name", "Name of the project.").Required().StringVar(&c.name)
	c.Cmd.Flag("owner", "Name of the project owner.").StringVar(&c.owner)

	return c
}

func (c ProjectCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectCreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := projectcreate.NewService(projectcreate.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	project, err := svc.Run(ctx, projectcreate.Request{
		Name:  c.name,
		Owner: c.owner,
	})
	if err != nil {
		return fmt.Errorf("could not create project: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Project created: %s (%s)\n", project.Name, project.ID)
	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/projectget"
	"github.com/ganttmcp/ganttmcp/internal/printer"
)

// ProjectGetCommand shows a project and its tasks.
type ProjectGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	format    string
}

// NewProjectGetCommand returns the project get command.
func NewProjectGetCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectGetCommand {
	c := &ProjectGetCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("get", "Show a project and its tasks.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ProjectGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectGetCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := projectget.NewService(projectget.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	project, err := svc.Run(ctx, projectget.Request{ProjectID: c.projectID})
	if err != nil {
		return fmt.Errorf("could not get project: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintProject(*project); err != nil {
		return fmt.Errorf("could not print project: %w", err)
	}

	return nil
}

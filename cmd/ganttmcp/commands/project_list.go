package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/projectlist"
	"github.com/ganttmcp/ganttmcp/internal/printer"
)

// ProjectListCommand lists all projects.
type ProjectListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	ownerFilter string
	format      string
}

// NewProjectListCommand returns the project list command.
func NewProjectListCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectListCommand {
	c := &ProjectListCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("list", "List all projects.")
	c.Cmd.Flag("owner", "Filter by owner.").StringVar(&c.ownerFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ProjectListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := projectlist.NewService(projectlist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	var ownerFilter *string
	if c.ownerFilter != "" {
		ownerFilter = &c.ownerFilter
	}

	projects, err := svc.Run(ctx, projectlist.Request{OwnerFilter: ownerFilter})
	if err != nil {
		return fmt.Errorf("could not list projects: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintProjectList(projects); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/projectimport"
	storageio "github.com/ganttmcp/ganttmcp/internal/storage/io"
)

// ProjectImportCommand imports a project from a YAML plan file.
type ProjectImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	planPath string
}

// NewProjectImportCommand returns the project import command.
func NewProjectImportCommand(rootCmd *RootCommand, projectCmd *kingpin.CmdClause) *ProjectImportCommand {
	c := &ProjectImportCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Command("import", "Import a project from a YAML plan file.")
	c.Cmd.Arg("plan", "Path to the plan file.").Required().StringVar(&c.planPath)

	return c
}

func (c ProjectImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectImportCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	// The plan repository works on an fs.FS, root it on the plan's directory.
	absPath, err := filepath.Abs(c.planPath)
	if err != nil {
		return fmt.Errorf("could not resolve plan path: %w", err)
	}
	planRepo := storageio.NewPlanYAMLRepository(os.DirFS(filepath.Dir(absPath)))

	svc, err := projectimport.NewService(projectimport.ServiceConfig{
		Repository: repo,
		PlanGetter: planRepo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	project, err := svc.Run(ctx, projectimport.Request{PlanPath: filepath.Base(absPath)})
	if err != nil {
		return fmt.Errorf("could not import project: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Project imported: %s (%s) with %d tasks\n", project.Name, project.ID, len(project.Tasks))
	return nil
}

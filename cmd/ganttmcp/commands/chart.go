package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/chartrender"
	"github.com/ganttmcp/ganttmcp/internal/render"
)

// ChartCommand renders a project Gantt chart to an HTML file.
type ChartCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	output    string
	open      bool
}

// NewChartCommand returns the chart command.
func NewChartCommand(rootCmd *RootCommand, app *kingpin.Application) *ChartCommand {
	c := &ChartCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("chart", "Render a project Gantt chart to an HTML file.")
	c.Cmd.Arg("project-id", "ID of the project.").Required().StringVar(&c.projectID)
	c.Cmd.Flag("output", "Output file path, defaults to a timestamped file in the charts directory.").Short('o').StringVar(&c.output)
	c.Cmd.Flag("open", "Open the rendered chart in the default browser.").BoolVar(&c.open)

	return c
}

func (c ChartCommand) Name() string { return c.Cmd.FullCommand() }

func (c ChartCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	renderer, err := render.NewHTMLRenderer(render.HTMLRendererConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create renderer: %w", err)
	}

	svc, err := chartrender.NewService(chartrender.ServiceConfig{
		Repository: repo,
		Renderer:   renderer,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, chartrender.Request{ProjectID: c.projectID})
	if err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}

	outPath := c.output
	if outPath == "" {
		if err := os.MkdirAll(c.rootCmd.ChartsDir, 0o755); err != nil {
			return fmt.Errorf("could not create charts directory: %w", err)
		}
		fileName := fmt.Sprintf("gantt_%s_%s.html", resp.Project.ID, time.Now().Format("20060102150405"))
		outPath = filepath.Join(c.rootCmd.ChartsDir, fileName)
	}

	if err := os.WriteFile(outPath, []byte(resp.Content), 0o644); err != nil {
		return fmt.Errorf("could not write chart file: %w", err)
	}

	absPath, err := filepath.Abs(outPath)
	if err != nil {
		absPath = outPath
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Chart for %q written to %s\n", resp.Project.Name, absPath)

	if c.open {
		if err := openBrowser(ctx, absPath); err != nil {
			return fmt.Errorf("could not open chart: %w", err)
		}
	}

	return nil
}

// openBrowser opens the given path with the platform opener.
func openBrowser(ctx context.Context, path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.CommandContext(ctx, opener, path).Start()
}

package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/chartrender"
	"github.com/ganttmcp/ganttmcp/internal/app/projectlist"
	"github.com/ganttmcp/ganttmcp/internal/render"
	"github.com/ganttmcp/ganttmcp/internal/web"
)

// WebCommand runs the project viewer HTTP server.
type WebCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	addr string
}

// NewWebCommand returns the web command.
func NewWebCommand(rootCmd *RootCommand, app *kingpin.Application) *WebCommand {
	c := &WebCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("web", "Run the project viewer HTTP server.")
	c.Cmd.Flag("addr", "Address the HTTP server listens on.").Default(":8080").StringVar(&c.addr)

	return c
}

func (c WebCommand) Name() string { return c.Cmd.FullCommand() }

func (c WebCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	projectListSvc, err := projectlist.NewService(projectlist.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create project list service: %w", err)
	}

	renderer, err := render.NewHTMLRenderer(render.HTMLRendererConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create renderer: %w", err)
	}
	chartRenderSvc, err := chartrender.NewService(chartrender.ServiceConfig{Repository: repo, Renderer: renderer, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create chart render service: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		ProjectList: projectListSvc,
		ChartRender: chartRenderSvc,
		Addr:        c.addr,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("could not create web server: %w", err)
	}

	return server.Run(ctx)
}

package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/ganttmcp/ganttmcp/internal/app/chartrender"
	"github.com/ganttmcp/ganttmcp/internal/app/projectcreate"
	"github.com/ganttmcp/ganttmcp/internal/app/projectlist"
	"github.com/ganttmcp/ganttmcp/internal/app/projectremove"
	"github.com/ganttmcp/ganttmcp/internal/app/taskadd"
	"github.com/ganttmcp/ganttmcp/internal/app/taskget"
	"github.com/ganttmcp/ganttmcp/internal/app/tasklist"
	"github.com/ganttmcp/ganttmcp/internal/app/taskremove"
	"github.com/ganttmcp/ganttmcp/internal/app/taskupdate"
	"github.com/ganttmcp/ganttmcp/internal/mcp"
	"github.com/ganttmcp/ganttmcp/internal/render"
)

// ServeCommand runs the MCP server over stdin/stdout.
type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}
	c.Cmd = app.Command("serve", "Run the MCP server over stdin/stdout.")
	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return err
	}

	projectCreateSvc, err := projectcreate.NewService(projectcreate.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create project create service: %w", err)
	}
	projectListSvc, err := projectlist.NewService(projectlist.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create project list service: %w", err)
	}
	projectRemoveSvc, err := projectremove.NewService(projectremove.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create project remove service: %w", err)
	}
	taskAddSvc, err := taskadd.NewService(taskadd.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create task add service: %w", err)
	}
	taskGetSvc, err := taskget.NewService(taskget.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create task get service: %w", err)
	}
	taskListSvc, err := tasklist.NewService(tasklist.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create task list service: %w", err)
	}
	taskUpdateSvc, err := taskupdate.NewService(taskupdate.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create task update service: %w", err)
	}
	taskRemoveSvc, err := taskremove.NewService(taskremove.ServiceConfig{Repository: repo, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create task remove service: %w", err)
	}

	renderer, err := render.NewHTMLRenderer(render.HTMLRendererConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create renderer: %w", err)
	}
	chartRenderSvc, err := chartrender.NewService(chartrender.ServiceConfig{Repository: repo, Renderer: renderer, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create chart render service: %w", err)
	}

	handler, err := mcp.NewToolHandler(mcp.ToolHandlerConfig{
		ProjectCreate: projectCreateSvc,
		ProjectList:   projectListSvc,
		ProjectRemove: projectRemoveSvc,
		TaskAdd:       taskAddSvc,
		TaskGet:       taskGetSvc,
		TaskList:      taskListSvc,
		TaskUpdate:    taskUpdateSvc,
		TaskRemove:    taskRemoveSvc,
		ChartRender:   chartRenderSvc,
		ChartsDir:     c.rootCmd.ChartsDir,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("could not create tool handler: %w", err)
	}

	// The protocol owns stdout, logs go to stderr only.
	server, err := mcp.NewServer(mcp.ServerConfig{
		Handler: handler,
		In:      c.rootCmd.Stdin,
		Out:     c.rootCmd.Stdout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create MCP server: %w", err)
	}

	return server.Run(ctx)
}

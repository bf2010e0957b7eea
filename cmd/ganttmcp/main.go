package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/ganttmcp/ganttmcp/cmd/ganttmcp/commands"
	"github.com/ganttmcp/ganttmcp/internal/log"
	loglogrus "github.com/ganttmcp/ganttmcp/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("ganttmcp", "Gantt chart project management over MCP, CLI and web.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	serveCmd := commands.NewServeCommand(rootCmd, app)
	webCmd := commands.NewWebCommand(rootCmd, app)
	chartCmd := commands.NewChartCommand(rootCmd, app)

	// Project subcommands share a parent command.
	projectCmd := app.Command("project", "Manage projects.")
	projectCreateCmd := commands.NewProjectCreateCommand(rootCmd, projectCmd)
	projectListCmd := commands.NewProjectListCommand(rootCmd, projectCmd)
	projectGetCmd := commands.NewProjectGetCommand(rootCmd, projectCmd)
	projectRmCmd := commands.NewProjectRmCommand(rootCmd, projectCmd)
	projectImportCmd := commands.NewProjectImportCommand(rootCmd, projectCmd)

	// Task subcommands share a parent command.
	taskCmd := app.Command("task", "Manage tasks.")
	taskAddCmd := commands.NewTaskAddCommand(rootCmd, taskCmd)
	taskListCmd := commands.NewTaskListCommand(rootCmd, taskCmd)
	taskGetCmd := commands.NewTaskGetCommand(rootCmd, taskCmd)
	taskUpdateCmd := commands.NewTaskUpdateCommand(rootCmd, taskCmd)
	taskRmCmd := commands.NewTaskRmCommand(rootCmd, taskCmd)

	cmds := map[string]commands.Command{
		serveCmd.Name():         serveCmd,
		webCmd.Name():           webCmd,
		chartCmd.Name():         chartCmd,
		projectCreateCmd.Name(): projectCreateCmd,
		projectListCmd.Name():   projectListCmd,
		projectGetCmd.Name():    projectGetCmd,
		projectRmCmd.Name():     projectRmCmd,
		projectImportCmd.Name(): projectImportCmd,
		taskAddCmd.Name():       taskAddCmd,
		taskListCmd.Name():      taskListCmd,
		taskGetCmd.Name():       taskGetCmd,
		taskUpdateCmd.Name():    taskUpdateCmd,
		taskRmCmd.Name():        taskRmCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"project list": true,
		"project get":  true,
		"task list":    true,
		"task get":     true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

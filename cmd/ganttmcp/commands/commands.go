package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/ganttmcp/ganttmcp/internal/conventions"
	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/storage"
	"github.com/ganttmcp/ganttmcp/internal/storage/jsonfile"
	"github.com/ganttmcp/ganttmcp/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const (
	// StorageTypeSQLite persists projects in a SQLite database.
	StorageTypeSQLite = "sqlite"
	// StorageTypeJSON persists projects in a single JSON document.
	StorageTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug       bool
	NoLog       bool
	NoColor     bool
	LoggerType  string
	StorageType string
	DBPath      string
	DataFile    string
	ChartsDir   string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("storage", "Selects the storage backend.").Default(StorageTypeSQLite).EnumVar(&c.StorageType, StorageTypeSQLite, StorageTypeJSON)
	app.Flag("db-path", "Path to the SQLite database file.").Envar("GANTTMCP_DB_PATH").Default(filepath.Join(dataDir, conventions.DBFile)).StringVar(&c.DBPath)
	app.Flag("data-file", "Path to the JSON data file.").Envar("GANTTMCP_DATA_FILE").Default(filepath.Join(dataDir, conventions.DataFile)).StringVar(&c.DataFile)
	app.Flag("charts-dir", "Directory where rendered charts are written.").Envar("GANTTMCP_CHARTS_DIR").Default(filepath.Join(dataDir, conventions.ChartsDir)).StringVar(&c.ChartsDir)

	return c
}

// newRepository initializes the storage backend selected by the root flags.
func newRepository(ctx context.Context, rootCmd *RootCommand) (storage.Repository, error) {
	switch rootCmd.StorageType {
	case StorageTypeJSON:
		repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{
			Path:   rootCmd.DataFile,
			Logger: rootCmd.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create JSON repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: rootCmd.DBPath,
			Logger: rootCmd.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create SQLite repository: %w", err)
		}
		return repo, nil
	}
}

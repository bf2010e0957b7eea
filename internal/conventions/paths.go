package conventions

const (
	// DefaultDataDir is the default ganttmcp data directory name (relative to home).
	DefaultDataDir = ".ganttmcp"
	// ChartsDir is the subdirectory for generated chart documents.
	ChartsDir = "charts"

	// DBFile is the SQLite database filename.
	DBFile = "ganttmcp.db"
	// DataFile is the JSON persisted-state filename.
	DataFile = "gantt_data.json"
)

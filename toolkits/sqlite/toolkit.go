// Package sqlite exposes SQL tools against a local SQLite database. It needs
// no credentials: SQLITE_PATH selects the database file and defaults to an
// in-memory database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"toolbridge/internal/mcp"
)

const toolkitName = "SQLiteToolkit"

type Toolkit struct {
	ctx mcp.ToolkitContext
	db  *sql.DB
}

func New() *Toolkit {
	return &Toolkit{}
}

func init() {
	mcp.MustRegisterToolkit(toolkitName, func() mcp.Toolkit {
		return New()
	})
}

func (t *Toolkit) ID() string {
	return toolkitName
}

func (t *Toolkit) Version() string {
	return "0.1.0"
}

func (t *Toolkit) Description() string {
	return "Local SQLite database access: queries, statements, and table listing."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	path, _ := ctx.Credentials.Lookup("SQLITE_PATH")
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps in-memory databases stable across calls.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping sqlite database: %w", err)
	}
	t.db = db
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "sqlite_query",
			Description: "Run a read-only SQL query and return rows.",
			ToolkitID:   toolkitName,
			InputSchema: schemaQuery(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleQuery,
		},
		{
			Name:        "sqlite_exec",
			Description: "Execute a SQL statement and return the affected row count.",
			ToolkitID:   toolkitName,
			InputSchema: schemaExec(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleExec,
		},
		{
			Name:        "sqlite_list_tables",
			Description: "List tables and their schemas.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListTables(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListTables,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

// Package postgres exposes SQL tools against a PostgreSQL database reached
// through DATABASE_URL. Queries and statements run on a shared pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"toolbridge/internal/mcp"
)

const toolkitName = "PostgresToolkit"

type Toolkit struct {
	ctx  mcp.ToolkitContext
	pool *pgxpool.Pool
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
	return "PostgreSQL access: run queries and statements, inspect tables."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	dsn, ok := ctx.Credentials.Lookup("DATABASE_URL")
	if !ok || dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(pingCtx, cfg)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	t.pool = pool
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "pg_query",
			Description: "Run a read-only SQL query and return rows.",
			ToolkitID:   toolkitName,
			InputSchema: schemaQuery(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleQuery,
		},
		{
			Name:        "pg_exec",
			Description: "Execute a SQL statement and return the affected row count.",
			ToolkitID:   toolkitName,
			InputSchema: schemaExec(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleExec,
		},
		{
			Name:        "pg_list_tables",
			Description: "List tables in a schema with approximate row counts.",
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

// Package notion exposes Notion workspace tools over the Notion REST API.
// It requires NOTION_TOKEN.
package notion

import (
	"errors"

	"toolbridge/internal/mcp"
)

const toolkitName = "NotionToolkit"

type Toolkit struct {
	ctx    mcp.ToolkitContext
	client *client

	// test hook
	baseURL string
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
	return "Notion workspace access: search, pages, database queries, and users."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	token, ok := ctx.Credentials.Lookup("NOTION_TOKEN")
	if !ok || token == "" {
		return errors.New("NOTION_TOKEN is not set")
	}
	t.client = newClient(token, t.baseURL)
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "notion_search",
			Description: "Search pages and databases shared with the integration.",
			ToolkitID:   toolkitName,
			InputSchema: schemaSearch(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleSearch,
		},
		{
			Name:        "notion_get_page",
			Description: "Retrieve a page's properties by page ID.",
			ToolkitID:   toolkitName,
			InputSchema: schemaGetPage(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGetPage,
		},
		{
			Name:        "notion_query_database",
			Description: "Query rows of a database by database ID.",
			ToolkitID:   toolkitName,
			InputSchema: schemaQueryDatabase(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleQueryDatabase,
		},
		{
			Name:        "notion_list_users",
			Description: "List users in the workspace.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListUsers(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListUsers,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

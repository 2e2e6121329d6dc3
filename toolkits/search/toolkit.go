// Package search exposes an in-process full-text index. Documents indexed
// through it live for the lifetime of the server process. It needs no
// credentials.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"toolbridge/internal/mcp"
)

const toolkitName = "SearchToolkit"

type Toolkit struct {
	ctx   mcp.ToolkitContext
	index bleve.Index
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
	return "In-memory full-text search: index documents and query them."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	if t.index != nil {
		return nil
	}
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}
	t.index = index
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "search_index_document",
			Description: "Index a document under an ID for later full-text search.",
			ToolkitID:   toolkitName,
			InputSchema: schemaIndexDocument(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleIndexDocument,
		},
		{
			Name:        "search_query",
			Description: "Search indexed documents with a query string.",
			ToolkitID:   toolkitName,
			InputSchema: schemaSearchQuery(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleSearchQuery,
		},
		{
			Name:        "search_count",
			Description: "Count documents in the index.",
			ToolkitID:   toolkitName,
			InputSchema: schemaCount(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleCount,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

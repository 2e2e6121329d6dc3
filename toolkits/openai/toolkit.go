// Package openai exposes OpenAI API tools: chat completions, embeddings,
// and model listing. It requires OPENAI_API_KEY.
package openai

import (
	"errors"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"toolbridge/internal/mcp"
)

const (
	toolkitName      = "OpenAIToolkit"
	defaultChatModel = "gpt-4o-mini"
)

type Toolkit struct {
	ctx    mcp.ToolkitContext
	client oai.Client

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
	return "OpenAI API access: chat completions, text embeddings, and model listing."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	apiKey, ok := ctx.Credentials.Lookup("OPENAI_API_KEY")
	if !ok || apiKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if t.baseURL != "" {
		opts = append(opts, option.WithBaseURL(t.baseURL))
	}
	t.client = oai.NewClient(opts...)
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "openai_chat",
			Description: "Send a prompt to an OpenAI chat model and return the completion.",
			ToolkitID:   toolkitName,
			InputSchema: schemaChat(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleChat,
		},
		{
			Name:        "openai_embed",
			Description: "Compute a text embedding vector with an OpenAI embeddings model.",
			ToolkitID:   toolkitName,
			InputSchema: schemaEmbed(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleEmbed,
		},
		{
			Name:        "openai_list_models",
			Description: "List models available to the configured API key.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListModels(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListModels,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

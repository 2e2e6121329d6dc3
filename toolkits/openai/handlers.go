package openai

import (
	"context"
	"errors"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"toolbridge/internal/mcp"
)

func (t *Toolkit) handleChat(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	prompt := toString(req.Arguments["prompt"])
	if prompt == "" {
		err := errors.New("prompt is required")
		return errorResult(err), err
	}
	model := toString(req.Arguments["model"])
	if model == "" {
		model = defaultChatModel
	}

	var messages []oai.ChatCompletionMessageParamUnion
	if system := toString(req.Arguments["system"]); system != "" {
		messages = append(messages, oai.SystemMessage(system))
	}
	messages = append(messages, oai.UserMessage(prompt))

	params := oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	}
	if temperature, ok := req.Arguments["temperature"].(float64); ok {
		params.Temperature = param.NewOpt(temperature)
	}
	if maxTokens := toInt64(req.Arguments["maxTokens"]); maxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(maxTokens)
	}

	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return errorResult(err), err
	}
	if len(resp.Choices) == 0 {
		err := errors.New("empty choices in response")
		return errorResult(err), err
	}
	choice := resp.Choices[0]
	return mcp.ToolResult{Data: map[string]any{
		"model":        resp.Model,
		"content":      choice.Message.Content,
		"finishReason": choice.FinishReason,
		"usage": map[string]any{
			"promptTokens":     resp.Usage.PromptTokens,
			"completionTokens": resp.Usage.CompletionTokens,
			"totalTokens":      resp.Usage.TotalTokens,
		},
	}}, nil
}

func (t *Toolkit) handleEmbed(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	input := toString(req.Arguments["input"])
	if input == "" {
		err := errors.New("input is required")
		return errorResult(err), err
	}
	model := toString(req.Arguments["model"])
	if model == "" {
		model = oai.EmbeddingModelTextEmbedding3Small
	}

	resp, err := t.client.Embeddings.New(ctx, oai.EmbeddingNewParams{
		Model: model,
		Input: oai.EmbeddingNewParamsInputUnion{
			OfString: param.NewOpt(input),
		},
	})
	if err != nil {
		return errorResult(err), err
	}
	if len(resp.Data) == 0 {
		err := errors.New("empty embeddings response")
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"model":      resp.Model,
		"dimensions": len(resp.Data[0].Embedding),
		"embedding":  resp.Data[0].Embedding,
	}}, nil
}

func (t *Toolkit) handleListModels(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	page, err := t.client.Models.List(ctx)
	if err != nil {
		return errorResult(err), err
	}
	models := make([]map[string]any, 0, len(page.Data))
	for _, model := range page.Data {
		models = append(models, map[string]any{
			"id":      model.ID,
			"ownedBy": model.OwnedBy,
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"models": models,
		"count":  len(models),
	}}, nil
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}

func toString(value any) string {
	text, _ := value.(string)
	return text
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}

package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"toolbridge/internal/credentials"
	"toolbridge/internal/mcp"
)

func testToolkit(t *testing.T, handler http.Handler) *Toolkit {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tk := New()
	tk.baseURL = server.URL
	err := tk.Init(mcp.ToolkitContext{
		Credentials: credentials.Set{"OPENAI_API_KEY": "sk-test"},
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return tk
}

func TestInitRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	tk := New()
	if err := tk.Init(mcp.ToolkitContext{Credentials: credentials.Set{}}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestRegisterTools(t *testing.T) {
	tk := New()
	reg := mcp.NewRegistry(nil)
	if err := tk.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, want := range []string{"openai_chat", "openai_embed", "openai_list_models"} {
		if _, ok := reg.Get(want); !ok {
			t.Fatalf("expected %s to be registered", want)
		}
	}
}

func TestHandleChat(t *testing.T) {
	tk := testToolkit(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "hello there"}}],
			"usage": {"prompt_tokens": 4, "completion_tokens": 2, "total_tokens": 6}
		}`))
	}))

	result, err := tk.handleChat(context.Background(), mcp.ToolRequest{Arguments: map[string]any{
		"prompt": "say hello",
	}})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	data := result.Data.(map[string]any)
	if data["content"] != "hello there" {
		t.Fatalf("unexpected content: %#v", data)
	}
	usage := data["usage"].(map[string]any)
	if usage["totalTokens"] != int64(6) {
		t.Fatalf("unexpected usage: %#v", usage)
	}
}

func TestHandleChatRequiresPrompt(t *testing.T) {
	tk := testToolkit(t, http.NotFoundHandler())
	if _, err := tk.handleChat(context.Background(), mcp.ToolRequest{Arguments: map[string]any{}}); err == nil {
		t.Fatalf("expected error for missing prompt")
	}
}

func TestHandleEmbed(t *testing.T) {
	tk := testToolkit(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "text-embedding-3-small",
			"data": [{"index": 0, "embedding": [0.1, 0.2, 0.3]}],
			"usage": {"prompt_tokens": 3, "total_tokens": 3}
		}`))
	}))

	result, err := tk.handleEmbed(context.Background(), mcp.ToolRequest{Arguments: map[string]any{
		"input": "some text",
	}})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	data := result.Data.(map[string]any)
	if data["dimensions"] != 3 {
		t.Fatalf("unexpected dimensions: %#v", data)
	}
}

func TestHandleEmbedRequiresInput(t *testing.T) {
	tk := testToolkit(t, http.NotFoundHandler())
	if _, err := tk.handleEmbed(context.Background(), mcp.ToolRequest{Arguments: map[string]any{}}); err == nil {
		t.Fatalf("expected error for missing input")
	}
}

func TestHandleListModels(t *testing.T) {
	tk := testToolkit(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"id": "gpt-4o-mini", "object": "model", "owned_by": "openai"},
				{"id": "text-embedding-3-small", "object": "model", "owned_by": "openai"}
			]
		}`))
	}))

	result, err := tk.handleListModels(context.Background(), mcp.ToolRequest{})
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	data := result.Data.(map[string]any)
	if data["count"] != 2 {
		t.Fatalf("unexpected models: %#v", data)
	}
}

// Package sdk is the stable surface for building external toolkits. It
// re-exports the types a toolkit implementation needs without exposing the
// rest of the internal tree.
package sdk

import (
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"toolbridge/internal/credentials"
	"toolbridge/internal/kube"
	"toolbridge/internal/mcp"
	"toolbridge/internal/redact"
)

// Core toolkit interfaces and types.
type Toolkit = mcp.Toolkit

type ToolkitContext = mcp.ToolkitContext

type ToolSpec = mcp.ToolSpec

type ToolHandler = mcp.ToolHandler

type ToolSafety = mcp.ToolSafety

type ToolRequest = mcp.ToolRequest

type ToolResult = mcp.ToolResult

type ToolInfo = mcp.ToolInfo

type Registry = mcp.Registry

const (
	SafetyReadOnly    = mcp.SafetyReadOnly
	SafetyWrite       = mcp.SafetyWrite
	SafetyRiskyWrite  = mcp.SafetyRiskyWrite
	SafetyDestructive = mcp.SafetyDestructive
)

// Toolkit registration for compiled-in discovery.
func RegisterToolkit(id string, factory mcp.ToolkitFactory) error {
	return mcp.RegisterToolkit(id, factory)
}

func MustRegisterToolkit(id string, factory mcp.ToolkitFactory) {
	mcp.MustRegisterToolkit(id, factory)
}

func RegisteredToolkits() []string {
	return mcp.RegisteredToolkits()
}

// Credential resolution.
type Credentials = credentials.Set

func RequiredCredentials(toolkit string) []string {
	return credentials.Required(toolkit)
}

// Shared services and invoker.
type ServiceRegistry = mcp.ServiceRegistry

type ToolInvoker = mcp.ToolInvoker

type Redactor = redact.Redactor

// Kubernetes helpers for toolkits that talk to a cluster.
type Clients = kube.Clients

func ResolveResource(mapper meta.RESTMapper, apiVersion, kind, resource string) (schema.GroupVersionResource, bool, error) {
	return kube.ResolveResource(mapper, apiVersion, kind, resource)
}

// Package kubernetes exposes read-only cluster inspection tools over
// client-go. The client bundle it builds is shared through the service
// registry so the Helm toolkit reuses the same connection.
package kubernetes

import (
	"toolbridge/internal/kube"
	"toolbridge/internal/mcp"
)

const (
	toolkitName = "KubernetesToolkit"

	// ServiceName is the service-registry key for the shared client bundle.
	ServiceName = "kube.clients"
)

type Toolkit struct {
	ctx     mcp.ToolkitContext
	clients *kube.Clients
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
	return "Read-only Kubernetes inspection: pods, nodes, events, logs, arbitrary resources, and pod metrics."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	if svc, ok := ctx.Services.Get(ServiceName); ok {
		if clients, ok := svc.(*kube.Clients); ok {
			t.clients = clients
			return nil
		}
	}
	kubeCfg := kube.Config{}
	if ctx.Config != nil {
		kubeCfg.Kubeconfig = ctx.Config.Kubeconfig
		kubeCfg.Context = ctx.Config.Context
	}
	clients, err := kube.NewClients(kubeCfg)
	if err != nil {
		return err
	}
	t.clients = clients
	if ctx.Services != nil {
		_ = ctx.Services.Register(ServiceName, clients)
	}
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "k8s_list_pods",
			Description: "List pods in a namespace (or all namespaces) with phase and restarts.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListPods(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListPods,
		},
		{
			Name:        "k8s_get_resource",
			Description: "Fetch any resource by apiVersion/kind or resource name, rendered as YAML.",
			ToolkitID:   toolkitName,
			InputSchema: schemaGetResource(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGetResource,
		},
		{
			Name:        "k8s_pod_logs",
			Description: "Read logs from a pod container.",
			ToolkitID:   toolkitName,
			InputSchema: schemaPodLogs(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handlePodLogs,
		},
		{
			Name:        "k8s_list_events",
			Description: "List recent events in a namespace, most recent first.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListEvents(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListEvents,
		},
		{
			Name:        "k8s_top_pods",
			Description: "Report pod CPU and memory usage from the metrics API.",
			ToolkitID:   toolkitName,
			InputSchema: schemaTopPods(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleTopPods,
		},
		{
			Name:        "k8s_list_nodes",
			Description: "List cluster nodes with readiness and versions.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListNodes(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListNodes,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

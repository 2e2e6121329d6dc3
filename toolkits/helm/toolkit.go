// Package helm exposes read-only Helm release inspection tools. It reuses
// the Kubernetes toolkit's client bundle through the service registry when
// available, and builds its own otherwise.
package helm

import (
	"helm.sh/helm/v3/pkg/action"

	"toolbridge/internal/kube"
	"toolbridge/internal/mcp"
	"toolbridge/toolkits/kubernetes"
)

const toolkitName = "HelmToolkit"

type Toolkit struct {
	ctx     mcp.ToolkitContext
	clients *kube.Clients

	// test hook
	actionConfigOverride func(namespace string) (*action.Configuration, error)
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
	return "Read-only Helm release inspection: list releases, status, and history."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	t.ctx = ctx
	if svc, ok := ctx.Services.Get(kubernetes.ServiceName); ok {
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
		_ = ctx.Services.Register(kubernetes.ServiceName, clients)
	}
	return nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "helm_list_releases",
			Description: "List Helm releases in a namespace or across all namespaces.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListReleases(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListReleases,
		},
		{
			Name:        "helm_release_status",
			Description: "Get status and notes for a Helm release.",
			ToolkitID:   toolkitName,
			InputSchema: schemaReleaseStatus(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleReleaseStatus,
		},
		{
			Name:        "helm_release_history",
			Description: "List revision history for a Helm release.",
			ToolkitID:   toolkitName,
			InputSchema: schemaReleaseHistory(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleReleaseHistory,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

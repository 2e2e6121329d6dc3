package helm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/release"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"toolbridge/internal/mcp"
)

const helmDriver = "secrets"

type sharedRESTClientGetter struct {
	restConfig *rest.Config
	mapper     meta.RESTMapper
	discovery  discovery.DiscoveryInterface
	kubeconfig string
	context    string
	namespace  string
}

func (g *sharedRESTClientGetter) ToRESTConfig() (*rest.Config, error) {
	if g.restConfig == nil {
		return nil, errors.New("missing rest config")
	}
	return g.restConfig, nil
}

func (g *sharedRESTClientGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	if g.discovery == nil {
		return nil, errors.New("missing discovery client")
	}
	return memory.NewMemCacheClient(g.discovery), nil
}

func (g *sharedRESTClientGetter) ToRESTMapper() (meta.RESTMapper, error) {
	if g.mapper == nil {
		return nil, errors.New("missing rest mapper")
	}
	return g.mapper, nil
}

func (g *sharedRESTClientGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if g.kubeconfig != "" {
		rules.ExplicitPath = expandHome(g.kubeconfig)
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: g.context}
	if g.namespace != "" {
		overrides.Context.Namespace = g.namespace
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)
}

func expandHome(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home := homedir.HomeDir()
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (t *Toolkit) actionConfig(namespace string) (*action.Configuration, error) {
	if t.actionConfigOverride != nil {
		return t.actionConfigOverride(namespace)
	}
	getter := &sharedRESTClientGetter{
		restConfig: t.clients.RestConfig,
		mapper:     t.clients.Mapper,
		discovery:  t.clients.Discovery,
		namespace:  namespace,
	}
	if t.ctx.Config != nil {
		getter.kubeconfig = t.ctx.Config.Kubeconfig
		getter.context = t.ctx.Config.Context
	}
	cfg := new(action.Configuration)
	if err := cfg.Init(getter, namespace, helmDriver, func(string, ...interface{}) {}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (t *Toolkit) handleListReleases(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := req.Arguments
	namespace := toString(args["namespace"])
	allNamespaces, _ := args["allNamespaces"].(bool)
	if allNamespaces {
		namespace = ""
	}
	cfg, err := t.actionConfig(namespace)
	if err != nil {
		return errorResult(err), err
	}
	list := action.NewList(cfg)
	list.All = true
	list.AllNamespaces = allNamespaces
	list.SetStateMask()
	if filter := toString(args["filter"]); filter != "" {
		list.Filter = filter
	}
	if limit := toInt(args["limit"]); limit > 0 {
		list.Limit = limit
	}
	releases, err := list.Run()
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"releases": summarizeReleases(releases),
		"count":    len(releases),
	}}, nil
}

func (t *Toolkit) handleReleaseStatus(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := req.Arguments
	releaseName := toString(args["release"])
	namespace := toString(args["namespace"])
	if releaseName == "" || namespace == "" {
		err := errors.New("release and namespace are required")
		return errorResult(err), err
	}
	cfg, err := t.actionConfig(namespace)
	if err != nil {
		return errorResult(err), err
	}
	status := action.NewStatus(cfg)
	rel, err := status.Run(releaseName)
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: summarizeRelease(rel)}, nil
}

func (t *Toolkit) handleReleaseHistory(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := req.Arguments
	releaseName := toString(args["release"])
	namespace := toString(args["namespace"])
	if releaseName == "" || namespace == "" {
		err := errors.New("release and namespace are required")
		return errorResult(err), err
	}
	cfg, err := t.actionConfig(namespace)
	if err != nil {
		return errorResult(err), err
	}
	history := action.NewHistory(cfg)
	if limit := toInt(args["limit"]); limit > 0 {
		history.Max = limit
	}
	releases, err := history.Run(releaseName)
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"release":   releaseName,
		"revisions": summarizeReleases(releases),
		"count":     len(releases),
	}}, nil
}

func summarizeRelease(rel *release.Release) map[string]any {
	if rel == nil {
		return map[string]any{}
	}
	out := map[string]any{
		"name":      rel.Name,
		"namespace": rel.Namespace,
		"revision":  rel.Version,
	}
	if rel.Info != nil {
		out["status"] = rel.Info.Status.String()
		out["updated"] = rel.Info.LastDeployed.Time
		if rel.Info.Notes != "" {
			out["notes"] = rel.Info.Notes
		}
	} else {
		out["status"] = "unknown"
	}
	if rel.Chart != nil && rel.Chart.Metadata != nil {
		out["chart"] = fmt.Sprintf("%s-%s", rel.Chart.Metadata.Name, rel.Chart.Metadata.Version)
		out["appVersion"] = rel.Chart.Metadata.AppVersion
	}
	return out
}

func summarizeReleases(releases []*release.Release) []map[string]any {
	out := make([]map[string]any, 0, len(releases))
	for _, rel := range releases {
		out = append(out, summarizeRelease(rel))
	}
	return out
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}

func toString(value any) string {
	text, _ := value.(string)
	return text
}

func toInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Package kube builds the Kubernetes client bundle shared by the Kubernetes
// and Helm toolkits.
package kube

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"
)

type Clients struct {
	RestConfig *rest.Config
	Typed      kubernetes.Interface
	Dynamic    dynamic.Interface
	Discovery  discovery.DiscoveryInterface
	Mapper     meta.RESTMapper
	Metrics    metricsclient.Interface
}

type Config struct {
	Kubeconfig string
	Context    string
}

func NewClients(cfg Config) (*Clients, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if explicit := kubeconfigPath(cfg.Kubeconfig); explicit != "" {
		loadingRules.ExplicitPath = explicit
	}
	loading := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{CurrentContext: cfg.Context},
	)
	restConfig, err := loading.ClientConfig()
	if err != nil {
		return nil, err
	}

	typed, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, err
	}
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, err
	}
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, err
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(discoveryClient))
	metricsClient, err := metricsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, err
	}

	return &Clients{
		RestConfig: restConfig,
		Typed:      typed,
		Dynamic:    dynamicClient,
		Discovery:  discoveryClient,
		Mapper:     mapper,
		Metrics:    metricsClient,
	}, nil
}

func kubeconfigPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		home := homedir.HomeDir()
		if home == "" {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return os.ExpandEnv(path)
}

// ResolveResource maps an apiVersion/kind pair or a resource name to a GVR
// plus whether the resource is namespaced.
func ResolveResource(mapper meta.RESTMapper, apiVersion, kind, resource string) (schema.GroupVersionResource, bool, error) {
	if mapper == nil {
		return schema.GroupVersionResource{}, false, errors.New("missing rest mapper")
	}
	if resource != "" {
		groupResource := schema.ParseGroupResource(resource)
		gvr := schema.GroupVersionResource{Group: groupResource.Group, Resource: groupResource.Resource}
		if apiVersion != "" {
			if gv, err := schema.ParseGroupVersion(apiVersion); err == nil {
				gvr.Version = gv.Version
			}
		}
		resolved, err := mapper.ResourceFor(gvr)
		if err == nil {
			gvk, err := mapper.KindFor(resolved)
			if err == nil {
				mapping, err := mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
				if err == nil {
					return mapping.Resource, mapping.Scope.Name() == meta.RESTScopeNameNamespace, nil
				}
			}
		}
	}
	if apiVersion == "" || kind == "" {
		return schema.GroupVersionResource{}, false, errors.New("apiVersion and kind required")
	}
	gv, err := schema.ParseGroupVersion(apiVersion)
	if err != nil {
		return schema.GroupVersionResource{}, false, err
	}
	mapping, err := mapper.RESTMapping(schema.GroupKind{Group: gv.Group, Kind: kind}, gv.Version)
	if err != nil {
		return schema.GroupVersionResource{}, false, err
	}
	return mapping.Resource, mapping.Scope.Name() == meta.RESTScopeNameNamespace, nil
}

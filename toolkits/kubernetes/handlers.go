package kubernetes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	sigyaml "sigs.k8s.io/yaml"

	"toolbridge/internal/kube"
	"toolbridge/internal/mcp"
)

func (t *Toolkit) handleListPods(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	opts := metav1.ListOptions{
		LabelSelector: toString(req.Arguments["labelSelector"]),
		FieldSelector: toString(req.Arguments["fieldSelector"]),
	}
	if limit := toInt64(req.Arguments["limit"]); limit > 0 {
		opts.Limit = limit
	}
	namespace := toString(req.Arguments["namespace"])
	list, err := t.clients.Typed.CoreV1().Pods(namespace).List(ctx, opts)
	if err != nil {
		return errorResult(err), err
	}
	pods := make([]map[string]any, 0, len(list.Items))
	for _, pod := range list.Items {
		var restarts int32
		ready := 0
		for _, status := range pod.Status.ContainerStatuses {
			restarts += status.RestartCount
			if status.Ready {
				ready++
			}
		}
		pods = append(pods, map[string]any{
			"name":       pod.Name,
			"namespace":  pod.Namespace,
			"phase":      string(pod.Status.Phase),
			"node":       pod.Spec.NodeName,
			"restarts":   restarts,
			"readyCount": ready,
			"containers": len(pod.Spec.Containers),
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"pods":  pods,
		"count": len(pods),
	}}, nil
}

func (t *Toolkit) handleGetResource(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name := toString(req.Arguments["name"])
	if name == "" {
		err := errors.New("name is required")
		return errorResult(err), err
	}
	gvr, namespaced, err := kube.ResolveResource(
		t.clients.Mapper,
		toString(req.Arguments["apiVersion"]),
		toString(req.Arguments["kind"]),
		toString(req.Arguments["resource"]),
	)
	if err != nil {
		return errorResult(err), err
	}

	var object map[string]any
	if namespaced {
		namespace := toString(req.Arguments["namespace"])
		if namespace == "" {
			namespace = metav1.NamespaceDefault
		}
		got, err := t.clients.Dynamic.Resource(gvr).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return errorResult(err), err
		}
		object = got.Object
	} else {
		got, err := t.clients.Dynamic.Resource(gvr).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return errorResult(err), err
		}
		object = got.Object
	}

	rendered, err := sigyaml.Marshal(object)
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"resource": gvr.Resource,
		"group":    gvr.Group,
		"version":  gvr.Version,
		"yaml":     string(rendered),
	}}, nil
}

func (t *Toolkit) handlePodLogs(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name := toString(req.Arguments["name"])
	if name == "" {
		err := errors.New("name is required")
		return errorResult(err), err
	}
	namespace := toString(req.Arguments["namespace"])
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	options := &corev1.PodLogOptions{
		Container: toString(req.Arguments["container"]),
	}
	if previous, ok := req.Arguments["previous"].(bool); ok {
		options.Previous = previous
	}
	if lines := toInt64(req.Arguments["tailLines"]); lines > 0 {
		options.TailLines = &lines
	}
	if seconds := toInt64(req.Arguments["sinceSeconds"]); seconds > 0 {
		options.SinceSeconds = &seconds
	}
	stream, err := t.clients.Typed.CoreV1().Pods(namespace).GetLogs(name, options).Stream(ctx)
	if err != nil {
		return errorResult(err), err
	}
	defer stream.Close()
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, stream); err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"pod":       name,
		"namespace": namespace,
		"logs":      buf.String(),
	}}, nil
}

func (t *Toolkit) handleListEvents(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	opts := metav1.ListOptions{
		FieldSelector: toString(req.Arguments["fieldSelector"]),
	}
	if limit := toInt64(req.Arguments["limit"]); limit > 0 {
		opts.Limit = limit
	}
	namespace := toString(req.Arguments["namespace"])
	list, err := t.clients.Typed.CoreV1().Events(namespace).List(ctx, opts)
	if err != nil {
		return errorResult(err), err
	}
	sort.Slice(list.Items, func(i, j int) bool {
		return list.Items[i].LastTimestamp.After(list.Items[j].LastTimestamp.Time)
	})
	events := make([]map[string]any, 0, len(list.Items))
	for _, event := range list.Items {
		events = append(events, map[string]any{
			"type":      event.Type,
			"reason":    event.Reason,
			"message":   event.Message,
			"object":    event.InvolvedObject.Kind + "/" + event.InvolvedObject.Name,
			"namespace": event.Namespace,
			"count":     event.Count,
			"lastSeen":  event.LastTimestamp.Time,
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"events": events,
		"count":  len(events),
	}}, nil
}

func (t *Toolkit) handleTopPods(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if t.clients.Metrics == nil {
		err := errors.New("metrics client not available")
		return errorResult(err), err
	}
	namespace := toString(req.Arguments["namespace"])
	list, err := t.clients.Metrics.MetricsV1beta1().PodMetricses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return errorResult(err), err
	}
	pods := make([]map[string]any, 0, len(list.Items))
	for _, item := range list.Items {
		var cpuMillis, memBytes int64
		for _, container := range item.Containers {
			cpuMillis += container.Usage.Cpu().MilliValue()
			memBytes += container.Usage.Memory().Value()
		}
		pods = append(pods, map[string]any{
			"name":        item.Name,
			"namespace":   item.Namespace,
			"cpuMillis":   cpuMillis,
			"memoryBytes": memBytes,
		})
	}
	sort.Slice(pods, func(i, j int) bool {
		return pods[i]["cpuMillis"].(int64) > pods[j]["cpuMillis"].(int64)
	})
	return mcp.ToolResult{Data: map[string]any{
		"pods":  pods,
		"count": len(pods),
	}}, nil
}

func (t *Toolkit) handleListNodes(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	list, err := t.clients.Typed.CoreV1().Nodes().List(ctx, metav1.ListOptions{
		LabelSelector: toString(req.Arguments["labelSelector"]),
	})
	if err != nil {
		return errorResult(err), err
	}
	nodes := make([]map[string]any, 0, len(list.Items))
	for _, node := range list.Items {
		ready := false
		for _, cond := range node.Status.Conditions {
			if cond.Type == corev1.NodeReady && cond.Status == corev1.ConditionTrue {
				ready = true
			}
		}
		nodes = append(nodes, map[string]any{
			"name":           node.Name,
			"ready":          ready,
			"kubeletVersion": node.Status.NodeInfo.KubeletVersion,
			"osImage":        node.Status.NodeInfo.OSImage,
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"nodes": nodes,
		"count": len(nodes),
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

package aws

import (
	"context"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/route53resolver"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"toolbridge/internal/mcp"
)

const defaultListLimit = 50

func (t *Toolkit) handleGetCallerIdentity(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"region":  cfg.Region,
		"account": sdkaws.ToString(out.Account),
		"arn":     sdkaws.ToString(out.Arn),
		"userId":  sdkaws.ToString(out.UserId),
	}}, nil
}

func (t *Toolkit) handleListEC2Instances(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	input := &ec2.DescribeInstancesInput{}
	if state := toString(req.Arguments["state"]); state != "" {
		input.Filters = []ec2types.Filter{{
			Name:   sdkaws.String("instance-state-name"),
			Values: []string{state},
		}}
	}
	out, err := ec2.NewFromConfig(cfg).DescribeInstances(ctx, input)
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	instances := []map[string]any{}
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			if len(instances) >= limit {
				break
			}
			entry := map[string]any{
				"instanceId":   sdkaws.ToString(instance.InstanceId),
				"instanceType": string(instance.InstanceType),
				"privateIp":    sdkaws.ToString(instance.PrivateIpAddress),
				"publicIp":     sdkaws.ToString(instance.PublicIpAddress),
			}
			if instance.State != nil {
				entry["state"] = string(instance.State.Name)
			}
			instances = append(instances, entry)
		}
	}
	return mcp.ToolResult{Data: map[string]any{
		"region":    cfg.Region,
		"instances": instances,
		"count":     len(instances),
	}}, nil
}

func (t *Toolkit) handleListIAMUsers(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	out, err := iam.NewFromConfig(cfg).ListUsers(ctx, &iam.ListUsersInput{
		MaxItems: sdkaws.Int32(int32(limit)),
	})
	if err != nil {
		return errorResult(err), err
	}
	users := make([]map[string]any, 0, len(out.Users))
	for _, user := range out.Users {
		users = append(users, map[string]any{
			"userName": sdkaws.ToString(user.UserName),
			"arn":      sdkaws.ToString(user.Arn),
			"created":  user.CreateDate,
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"users": users,
		"count": len(users),
	}}, nil
}

func (t *Toolkit) handleListEKSClusters(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	out, err := eks.NewFromConfig(cfg).ListClusters(ctx, &eks.ListClustersInput{})
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"region":   cfg.Region,
		"clusters": out.Clusters,
		"count":    len(out.Clusters),
	}}, nil
}

func (t *Toolkit) handleListECRRepositories(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	out, err := ecr.NewFromConfig(cfg).DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		MaxResults: sdkaws.Int32(int32(limit)),
	})
	if err != nil {
		return errorResult(err), err
	}
	repos := make([]map[string]any, 0, len(out.Repositories))
	for _, repo := range out.Repositories {
		repos = append(repos, map[string]any{
			"name":    sdkaws.ToString(repo.RepositoryName),
			"uri":     sdkaws.ToString(repo.RepositoryUri),
			"created": repo.CreatedAt,
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"repositories": repos,
		"count":        len(repos),
	}}, nil
}

func (t *Toolkit) handleListAutoscalingGroups(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	out, err := autoscaling.NewFromConfig(cfg).DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		MaxRecords: sdkaws.Int32(int32(limit)),
	})
	if err != nil {
		return errorResult(err), err
	}
	groups := make([]map[string]any, 0, len(out.AutoScalingGroups))
	for _, group := range out.AutoScalingGroups {
		groups = append(groups, map[string]any{
			"name":            sdkaws.ToString(group.AutoScalingGroupName),
			"minSize":         sdkaws.ToInt32(group.MinSize),
			"maxSize":         sdkaws.ToInt32(group.MaxSize),
			"desiredCapacity": sdkaws.ToInt32(group.DesiredCapacity),
			"instanceCount":   len(group.Instances),
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"groups": groups,
		"count":  len(groups),
	}}, nil
}

func (t *Toolkit) handleListLoadBalancers(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	out, err := elasticloadbalancingv2.NewFromConfig(cfg).DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
		PageSize: sdkaws.Int32(int32(limit)),
	})
	if err != nil {
		return errorResult(err), err
	}
	balancers := make([]map[string]any, 0, len(out.LoadBalancers))
	for _, lb := range out.LoadBalancers {
		entry := map[string]any{
			"name":    sdkaws.ToString(lb.LoadBalancerName),
			"arn":     sdkaws.ToString(lb.LoadBalancerArn),
			"dnsName": sdkaws.ToString(lb.DNSName),
			"type":    string(lb.Type),
			"scheme":  string(lb.Scheme),
		}
		if lb.State != nil {
			entry["state"] = string(lb.State.Code)
		}
		balancers = append(balancers, entry)
	}
	return mcp.ToolResult{Data: map[string]any{
		"loadBalancers": balancers,
		"count":         len(balancers),
	}}, nil
}

func (t *Toolkit) handleListKMSKeys(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	out, err := kms.NewFromConfig(cfg).ListKeys(ctx, &kms.ListKeysInput{
		Limit: sdkaws.Int32(int32(limit)),
	})
	if err != nil {
		return errorResult(err), err
	}
	keys := make([]map[string]any, 0, len(out.Keys))
	for _, key := range out.Keys {
		keys = append(keys, map[string]any{
			"keyId": sdkaws.ToString(key.KeyId),
			"arn":   sdkaws.ToString(key.KeyArn),
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"keys":  keys,
		"count": len(keys),
	}}, nil
}

func (t *Toolkit) handleListResolverEndpoints(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	cfg, err := t.awsConfig(ctx, toString(req.Arguments["region"]))
	if err != nil {
		return errorResult(err), err
	}
	limit := toLimit(req.Arguments["limit"])
	out, err := route53resolver.NewFromConfig(cfg).ListResolverEndpoints(ctx, &route53resolver.ListResolverEndpointsInput{
		MaxResults: sdkaws.Int32(int32(limit)),
	})
	if err != nil {
		return errorResult(err), err
	}
	endpoints := make([]map[string]any, 0, len(out.ResolverEndpoints))
	for _, endpoint := range out.ResolverEndpoints {
		endpoints = append(endpoints, map[string]any{
			"id":        sdkaws.ToString(endpoint.Id),
			"name":      sdkaws.ToString(endpoint.Name),
			"direction": string(endpoint.Direction),
			"status":    string(endpoint.Status),
			"ipCount":   sdkaws.ToInt32(endpoint.IpAddressCount),
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"endpoints": endpoints,
		"count":     len(endpoints),
	}}, nil
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}

func toString(value any) string {
	text, _ := value.(string)
	return text
}

func toLimit(value any) int {
	switch v := value.(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return defaultListLimit
}

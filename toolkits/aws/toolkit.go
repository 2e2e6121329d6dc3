// Package aws exposes read-only AWS inventory tools backed by aws-sdk-go-v2.
// Credentials supplied at registration time are pinned into every client via
// a static provider; without them the SDK default chain applies.
package aws

import (
	"context"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"

	awslib "toolbridge/internal/aws"
	"toolbridge/internal/mcp"
)

const toolkitName = "AWSToolkit"

type Toolkit struct {
	ctx     mcp.ToolkitContext
	mu      sync.Mutex
	configs map[string]sdkaws.Config
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
	return "Read-only AWS account inventory: identity, EC2, IAM, EKS, ECR, autoscaling, load balancers, KMS, Route53 resolver."
}

func (t *Toolkit) Init(ctx mcp.ToolkitContext) error {
	cfg, err := awslib.LoadConfig(context.Background(), "", ctx.Credentials)
	if err != nil {
		return err
	}
	t.ctx = ctx
	t.configs = map[string]sdkaws.Config{cfg.Region: cfg}
	return nil
}

// awsConfig returns a config for the requested region, reusing the one built
// at Init time when the region matches.
func (t *Toolkit) awsConfig(ctx context.Context, region string) (sdkaws.Config, error) {
	region = awslib.ResolveRegion(region, t.ctx.Credentials)
	t.mu.Lock()
	defer t.mu.Unlock()
	if region == "" {
		for _, cfg := range t.configs {
			return cfg, nil
		}
	}
	if cfg, ok := t.configs[region]; ok {
		return cfg, nil
	}
	cfg, err := awslib.LoadConfig(ctx, region, t.ctx.Credentials)
	if err != nil {
		return sdkaws.Config{}, err
	}
	t.configs[cfg.Region] = cfg
	return cfg, nil
}

func (t *Toolkit) Register(reg mcp.Registry) error {
	for _, tool := range t.toolSpecs() {
		if err := reg.Add(tool); err != nil {
			return err
		}
	}
	return nil
}

func (t *Toolkit) toolSpecs() []mcp.ToolSpec {
	return []mcp.ToolSpec{
		{
			Name:        "aws_get_caller_identity",
			Description: "Get the AWS account and caller identity for the configured credentials.",
			ToolkitID:   toolkitName,
			InputSchema: schemaRegionOnly(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGetCallerIdentity,
		},
		{
			Name:        "aws_list_ec2_instances",
			Description: "List EC2 instances with id, type, state, and addresses.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListEC2Instances(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListEC2Instances,
		},
		{
			Name:        "aws_list_iam_users",
			Description: "List IAM users in the account.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListWithLimit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListIAMUsers,
		},
		{
			Name:        "aws_list_eks_clusters",
			Description: "List EKS cluster names in a region.",
			ToolkitID:   toolkitName,
			InputSchema: schemaRegionOnly(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListEKSClusters,
		},
		{
			Name:        "aws_list_ecr_repositories",
			Description: "List ECR repositories with URI and creation time.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListWithLimit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListECRRepositories,
		},
		{
			Name:        "aws_list_autoscaling_groups",
			Description: "List autoscaling groups with capacity settings.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListWithLimit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListAutoscalingGroups,
		},
		{
			Name:        "aws_list_load_balancers",
			Description: "List application and network load balancers.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListWithLimit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListLoadBalancers,
		},
		{
			Name:        "aws_list_kms_keys",
			Description: "List KMS key ids and ARNs.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListWithLimit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListKMSKeys,
		},
		{
			Name:        "aws_list_resolver_endpoints",
			Description: "List Route53 resolver endpoints.",
			ToolkitID:   toolkitName,
			InputSchema: schemaListWithLimit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleListResolverEndpoints,
		},
	}
}

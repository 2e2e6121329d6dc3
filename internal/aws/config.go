package aws

import (
	"context"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	sdkcredentials "github.com/aws/aws-sdk-go-v2/credentials"

	"toolbridge/internal/credentials"
)

const defaultRegion = "us-east-1"

// ResolveRegion picks the region from the argument, then the credential set,
// then the ambient AWS environment variables.
func ResolveRegion(region string, creds credentials.Set) string {
	region = strings.TrimSpace(region)
	if region == "" {
		region = strings.TrimSpace(creds.Get("AWS_REGION"))
	}
	if region == "" {
		region = strings.TrimSpace(creds.Get("AWS_DEFAULT_REGION"))
	}
	return region
}

// LoadConfig builds an AWS SDK config for one toolkit registration. When the
// credential set resolves an access key pair, a static provider pins those
// values for every client built from the returned config; otherwise the SDK's
// default chain applies.
func LoadConfig(ctx context.Context, region string, creds credentials.Set) (sdkaws.Config, error) {
	loadOpts := []func(*sdkconfig.LoadOptions) error{}
	if profile := ResolveProfile(creds); profile != "" {
		loadOpts = append(loadOpts, sdkconfig.WithSharedConfigProfile(profile))
	}
	if region = ResolveRegion(region, creds); region != "" {
		loadOpts = append(loadOpts, sdkconfig.WithRegion(region))
	}
	accessKey, haveAccess := creds.Lookup("AWS_ACCESS_KEY_ID")
	secretKey, haveSecret := creds.Lookup("AWS_SECRET_ACCESS_KEY")
	if haveAccess && haveSecret {
		sessionToken := creds.Get("AWS_SESSION_TOKEN")
		provider := sdkcredentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)
		loadOpts = append(loadOpts, sdkconfig.WithCredentialsProvider(provider))
	}
	cfg, err := sdkconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = defaultRegion
	}
	return cfg, nil
}

func ResolveProfile(creds credentials.Set) string {
	profile := strings.TrimSpace(creds.Get("AWS_PROFILE"))
	if profile == "" {
		profile = strings.TrimSpace(creds.Get("AWS_DEFAULT_PROFILE"))
	}
	return profile
}

package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	awsec2 "tasnim.dev/vpc-sweep/internal/aws/ec2"
	awsssm "tasnim.dev/vpc-sweep/internal/aws/ssm"
	awsvpc "tasnim.dev/vpc-sweep/internal/aws/vpc"
)

// RegionClients holds the clients used to act on a single region.
type RegionClients struct {
	Region string
	VPC    *awsvpc.Client
	SSM    *awsssm.Client
}

// NewRegionClients builds the per-region clients from a base config. The base
// config is copied; its own region is not changed.
func NewRegionClients(cfg aws.Config, region string, dryRun bool) *RegionClients {
	regional := cfg.Copy()
	regional.Region = region

	return &RegionClients{
		Region: region,
		VPC:    awsvpc.NewClient(ec2.NewFromConfig(regional), awsvpc.WithDryRun(dryRun)),
		SSM:    awsssm.NewClient(ssm.NewFromConfig(regional), dryRun),
	}
}

// NewRegionSource returns the client that enumerates the account's regions.
func NewRegionSource(cfg aws.Config) *awsec2.Client {
	return awsec2.NewClient(ec2.NewFromConfig(cfg))
}

package ec2

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
)

type EC2API interface {
	DescribeRegions(ctx context.Context, params *awsec2.DescribeRegionsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRegionsOutput, error)
}

type Client struct {
	api EC2API
}

func NewClient(api EC2API) *Client {
	return &Client{api: api}
}

// ListRegions returns the regions enabled for the account, sorted by name.
func (c *Client) ListRegions(ctx context.Context) ([]string, error) {
	out, err := c.api.DescribeRegions(ctx, &awsec2.DescribeRegionsInput{
		AllRegions: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeRegions: %w", err)
	}

	var regions []string
	for _, r := range out.Regions {
		region := Region{
			Name:        aws.ToString(r.RegionName),
			OptInStatus: aws.ToString(r.OptInStatus),
		}
		if region.Name == "" || !region.Enabled() {
			continue
		}
		regions = append(regions, region.Name)
	}
	sort.Strings(regions)
	return regions, nil
}

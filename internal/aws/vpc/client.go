package vpc

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type VPCAPI interface {
	DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	DescribeSecurityGroupRules(ctx context.Context, params *awsec2.DescribeSecurityGroupRulesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupRulesOutput, error)
	DescribeInternetGateways(ctx context.Context, params *awsec2.DescribeInternetGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInternetGatewaysOutput, error)
	DescribeRouteTables(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error)
	DescribeNetworkAcls(ctx context.Context, params *awsec2.DescribeNetworkAclsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNetworkAclsOutput, error)

	DetachInternetGateway(ctx context.Context, params *awsec2.DetachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DetachInternetGatewayOutput, error)
	DeleteInternetGateway(ctx context.Context, params *awsec2.DeleteInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteInternetGatewayOutput, error)
	DeleteSubnet(ctx context.Context, params *awsec2.DeleteSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSubnetOutput, error)
	DeleteRouteTable(ctx context.Context, params *awsec2.DeleteRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteRouteTableOutput, error)
	DeleteNetworkAcl(ctx context.Context, params *awsec2.DeleteNetworkAclInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNetworkAclOutput, error)
	DeleteNetworkAclEntry(ctx context.Context, params *awsec2.DeleteNetworkAclEntryInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNetworkAclEntryOutput, error)
	DeleteSecurityGroup(ctx context.Context, params *awsec2.DeleteSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error)
	RevokeSecurityGroupIngress(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error)
	RevokeSecurityGroupEgress(ctx context.Context, params *awsec2.RevokeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupEgressOutput, error)
	DeleteVpc(ctx context.Context, params *awsec2.DeleteVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteVpcOutput, error)
}

type Client struct {
	api    VPCAPI
	dryRun bool
}

type Option func(*Client)

// WithDryRun makes every mutation a DryRun request. A DryRunOperation
// answer is reported as success.
func WithDryRun(dryRun bool) Option {
	return func(c *Client) { c.dryRun = dryRun }
}

func NewClient(api VPCAPI, opts ...Option) *Client {
	c := &Client{api: api}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DryRun reports whether mutations are sent as DryRun requests.
func (c *Client) DryRun() bool {
	return c.dryRun
}

func vpcFilter(vpcID string) []types.Filter {
	return []types.Filter{
		{Name: aws.String("vpc-id"), Values: []string{vpcID}},
	}
}

// FindDefaultVPC returns the region's default VPC, or nil when the region has none.
func (c *Client) FindDefaultVPC(ctx context.Context) (*DefaultVPC, error) {
	out, err := c.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{
		Filters: []types.Filter{
			{Name: aws.String("isDefault"), Values: []string{"true"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeVpcs: %w", err)
	}

	for _, v := range out.Vpcs {
		if !aws.ToBool(v.IsDefault) {
			continue
		}
		return &DefaultVPC{
			VPCID: aws.ToString(v.VpcId),
			CIDR:  aws.ToString(v.CidrBlock),
		}, nil
	}
	return nil, nil
}

func (c *Client) ListInternetGateways(ctx context.Context, vpcID string) ([]InternetGateway, error) {
	var igws []InternetGateway
	var nextToken *string

	for {
		out, err := c.api.DescribeInternetGateways(ctx, &awsec2.DescribeInternetGatewaysInput{
			Filters: []types.Filter{
				{Name: aws.String("attachment.vpc-id"), Values: []string{vpcID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeInternetGateways: %w", err)
		}

		for _, igw := range out.InternetGateways {
			igws = append(igws, InternetGateway{
				GatewayID: aws.ToString(igw.InternetGatewayId),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return igws, nil
}

// ListDefaultSubnets returns the subnets of the VPC that are the default for their AZ.
func (c *Client) ListDefaultSubnets(ctx context.Context, vpcID string) ([]Subnet, error) {
	var subnets []Subnet
	var nextToken *string

	for {
		out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
			Filters:   vpcFilter(vpcID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSubnets: %w", err)
		}

		for _, s := range out.Subnets {
			if !aws.ToBool(s.DefaultForAz) {
				continue
			}
			subnets = append(subnets, Subnet{
				SubnetID: aws.ToString(s.SubnetId),
				AZ:       aws.ToString(s.AvailabilityZone),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return subnets, nil
}

func (c *Client) ListRouteTables(ctx context.Context, vpcID string) ([]RouteTable, error) {
	var rts []RouteTable
	var nextToken *string

	for {
		out, err := c.api.DescribeRouteTables(ctx, &awsec2.DescribeRouteTablesInput{
			Filters:   vpcFilter(vpcID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeRouteTables: %w", err)
		}

		for _, rt := range out.RouteTables {
			isMain := false
			for _, assoc := range rt.Associations {
				if aws.ToBool(assoc.Main) {
					isMain = true
					break
				}
			}
			rts = append(rts, RouteTable{
				RouteTableID: aws.ToString(rt.RouteTableId),
				IsMain:       isMain,
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return rts, nil
}

func (c *Client) ListNetworkACLs(ctx context.Context, vpcID string) ([]NetworkACL, error) {
	var acls []NetworkACL
	var nextToken *string

	for {
		out, err := c.api.DescribeNetworkAcls(ctx, &awsec2.DescribeNetworkAclsInput{
			Filters:   vpcFilter(vpcID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeNetworkAcls: %w", err)
		}

		for _, acl := range out.NetworkAcls {
			acls = append(acls, NetworkACL{
				NACLID:    aws.ToString(acl.NetworkAclId),
				IsDefault: aws.ToBool(acl.IsDefault),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return acls, nil
}

func (c *Client) ListSecurityGroups(ctx context.Context, vpcID string) ([]SecurityGroup, error) {
	var sgs []SecurityGroup
	var nextToken *string

	for {
		out, err := c.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
			Filters:   vpcFilter(vpcID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroups: %w", err)
		}

		for _, sg := range out.SecurityGroups {
			sgs = append(sgs, SecurityGroup{
				GroupID: aws.ToString(sg.GroupId),
				Name:    aws.ToString(sg.GroupName),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return sgs, nil
}

// ListSecurityGroupRules returns every ingress and egress rule of the group.
func (c *Client) ListSecurityGroupRules(ctx context.Context, groupID string) ([]SecurityGroupRule, error) {
	var rules []SecurityGroupRule
	var nextToken *string

	for {
		out, err := c.api.DescribeSecurityGroupRules(ctx, &awsec2.DescribeSecurityGroupRulesInput{
			Filters: []types.Filter{
				{Name: aws.String("group-id"), Values: []string{groupID}},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroupRules: %w", err)
		}

		for _, r := range out.SecurityGroupRules {
			rules = append(rules, SecurityGroupRule{
				RuleID:   aws.ToString(r.SecurityGroupRuleId),
				GroupID:  aws.ToString(r.GroupId),
				IsEgress: aws.ToBool(r.IsEgress),
				Protocol: NormalizeProtocol(aws.ToString(r.IpProtocol)),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return rules, nil
}

// mutation maps a DryRunOperation answer to success when dry run is on.
func (c *Client) mutation(op string, err error) error {
	if err == nil {
		return nil
	}
	if c.dryRun && IsDryRunSuccess(err) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Client) DetachInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	_, err := c.api.DetachInternetGateway(ctx, &awsec2.DetachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
		DryRun:            aws.Bool(c.dryRun),
	})
	return c.mutation("DetachInternetGateway", err)
}

func (c *Client) DeleteInternetGateway(ctx context.Context, gatewayID string) error {
	_, err := c.api.DeleteInternetGateway(ctx, &awsec2.DeleteInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		DryRun:            aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteInternetGateway", err)
}

func (c *Client) DeleteSubnet(ctx context.Context, subnetID string) error {
	_, err := c.api.DeleteSubnet(ctx, &awsec2.DeleteSubnetInput{
		SubnetId: aws.String(subnetID),
		DryRun:   aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteSubnet", err)
}

func (c *Client) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	_, err := c.api.DeleteRouteTable(ctx, &awsec2.DeleteRouteTableInput{
		RouteTableId: aws.String(routeTableID),
		DryRun:       aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteRouteTable", err)
}

func (c *Client) DeleteNetworkACL(ctx context.Context, naclID string) error {
	_, err := c.api.DeleteNetworkAcl(ctx, &awsec2.DeleteNetworkAclInput{
		NetworkAclId: aws.String(naclID),
		DryRun:       aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteNetworkAcl", err)
}

// DeleteNetworkACLEntry removes one numbered entry in the given direction.
func (c *Client) DeleteNetworkACLEntry(ctx context.Context, naclID string, ruleNumber int32, egress bool) error {
	_, err := c.api.DeleteNetworkAclEntry(ctx, &awsec2.DeleteNetworkAclEntryInput{
		NetworkAclId: aws.String(naclID),
		RuleNumber:   aws.Int32(ruleNumber),
		Egress:       aws.Bool(egress),
		DryRun:       aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteNetworkAclEntry", err)
}

func (c *Client) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	_, err := c.api.DeleteSecurityGroup(ctx, &awsec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupID),
		DryRun:  aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteSecurityGroup", err)
}

func (c *Client) RevokeIngress(ctx context.Context, groupID string, ruleIDs []string) error {
	_, err := c.api.RevokeSecurityGroupIngress(ctx, &awsec2.RevokeSecurityGroupIngressInput{
		GroupId:              aws.String(groupID),
		SecurityGroupRuleIds: ruleIDs,
		DryRun:               aws.Bool(c.dryRun),
	})
	return c.mutation("RevokeSecurityGroupIngress", err)
}

func (c *Client) RevokeEgress(ctx context.Context, groupID string, ruleIDs []string) error {
	_, err := c.api.RevokeSecurityGroupEgress(ctx, &awsec2.RevokeSecurityGroupEgressInput{
		GroupId:              aws.String(groupID),
		SecurityGroupRuleIds: ruleIDs,
		DryRun:               aws.Bool(c.dryRun),
	})
	return c.mutation("RevokeSecurityGroupEgress", err)
}

func (c *Client) DeleteVPC(ctx context.Context, vpcID string) error {
	_, err := c.api.DeleteVpc(ctx, &awsec2.DeleteVpcInput{
		VpcId:  aws.String(vpcID),
		DryRun: aws.Bool(c.dryRun),
	})
	return c.mutation("DeleteVpc", err)
}

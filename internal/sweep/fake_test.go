package sweep

import (
	"context"
	"errors"
	"strings"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	awsssmsdk "github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"

	"tasnim.dev/vpc-sweep/internal/journal"
)

// fakeEC2 serves one region's default VPC from memory and logs every call
// as "Operation id".
type fakeEC2 struct {
	mu sync.Mutex

	vpcID    string // empty = region without default VPC
	igws     []string
	subnets  []types.Subnet
	rts      []types.RouteTable
	acls     []types.NetworkAcl
	sgs      []types.SecurityGroup
	sgRules  []types.SecurityGroupRule
	dryRun   bool
	failOn   map[string]error // keyed like calls, e.g. "DeleteSubnet subnet-b"
	describe error            // returned by every describe call

	calls []string
}

// standardVPC is a default VPC with 1 IGW, 2 default subnets (and one custom
// subnet), a main and a custom route table, default and custom NACL and SG.
func standardVPC() *fakeEC2 {
	return &fakeEC2{
		vpcID: "vpc-default",
		igws:  []string{"igw-1"},
		subnets: []types.Subnet{
			{SubnetId: awssdk.String("subnet-a"), AvailabilityZone: awssdk.String("us-east-1a"), DefaultForAz: awssdk.Bool(true)},
			{SubnetId: awssdk.String("subnet-b"), AvailabilityZone: awssdk.String("us-east-1b"), DefaultForAz: awssdk.Bool(true)},
			{SubnetId: awssdk.String("subnet-custom"), AvailabilityZone: awssdk.String("us-east-1c"), DefaultForAz: awssdk.Bool(false)},
		},
		rts: []types.RouteTable{
			{RouteTableId: awssdk.String("rtb-main"), Associations: []types.RouteTableAssociation{{Main: awssdk.Bool(true)}}},
			{RouteTableId: awssdk.String("rtb-custom"), Associations: []types.RouteTableAssociation{{Main: awssdk.Bool(false), SubnetId: awssdk.String("subnet-a")}}},
		},
		acls: []types.NetworkAcl{
			{NetworkAclId: awssdk.String("acl-default"), IsDefault: awssdk.Bool(true)},
			{NetworkAclId: awssdk.String("acl-custom"), IsDefault: awssdk.Bool(false)},
		},
		sgs: []types.SecurityGroup{
			{GroupId: awssdk.String("sg-default"), GroupName: awssdk.String("default")},
			{GroupId: awssdk.String("sg-web"), GroupName: awssdk.String("web")},
		},
		sgRules: []types.SecurityGroupRule{
			{SecurityGroupRuleId: awssdk.String("sgr-in-1"), GroupId: awssdk.String("sg-default"), IsEgress: awssdk.Bool(false), IpProtocol: awssdk.String("-1")},
			{SecurityGroupRuleId: awssdk.String("sgr-out-1"), GroupId: awssdk.String("sg-default"), IsEgress: awssdk.Bool(true), IpProtocol: awssdk.String("-1")},
			{SecurityGroupRuleId: awssdk.String("sgr-in-2"), GroupId: awssdk.String("sg-default"), IsEgress: awssdk.Bool(false), IpProtocol: awssdk.String("6")},
			{SecurityGroupRuleId: awssdk.String("sgr-web"), GroupId: awssdk.String("sg-web"), IsEgress: awssdk.Bool(false), IpProtocol: awssdk.String("6")},
		},
	}
}

func (f *fakeEC2) call(op, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := op + " " + id
	f.calls = append(f.calls, key)
	if err, ok := f.failOn[key]; ok {
		return err
	}
	if f.dryRun {
		return &smithy.GenericAPIError{Code: "DryRunOperation", Message: "Request would have succeeded, but DryRun flag is set."}
	}
	return nil
}

// mutations returns the logged calls that are not describes.
func (f *fakeEC2) mutations() []string {
	var out []string
	for _, c := range f.calls {
		if !strings.HasPrefix(c, "Describe") {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeEC2) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

func (f *fakeEC2) index(key string) int {
	for i, c := range f.calls {
		if c == key {
			return i
		}
	}
	return -1
}

func (f *fakeEC2) describeCall(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op+" -")
	return f.describe
}

func (f *fakeEC2) DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error) {
	if err := f.describeCall("DescribeVpcs"); err != nil {
		return nil, err
	}
	if f.vpcID == "" {
		return &awsec2.DescribeVpcsOutput{}, nil
	}
	return &awsec2.DescribeVpcsOutput{
		Vpcs: []types.Vpc{{VpcId: awssdk.String(f.vpcID), CidrBlock: awssdk.String("172.31.0.0/16"), IsDefault: awssdk.Bool(true)}},
	}, nil
}

func (f *fakeEC2) DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error) {
	if err := f.describeCall("DescribeSubnets"); err != nil {
		return nil, err
	}
	return &awsec2.DescribeSubnetsOutput{Subnets: f.subnets}, nil
}

func (f *fakeEC2) DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
	if err := f.describeCall("DescribeSecurityGroups"); err != nil {
		return nil, err
	}
	return &awsec2.DescribeSecurityGroupsOutput{SecurityGroups: f.sgs}, nil
}

func (f *fakeEC2) DescribeSecurityGroupRules(ctx context.Context, params *awsec2.DescribeSecurityGroupRulesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupRulesOutput, error) {
	if err := f.describeCall("DescribeSecurityGroupRules"); err != nil {
		return nil, err
	}
	groupID := params.Filters[0].Values[0]
	var rules []types.SecurityGroupRule
	for _, r := range f.sgRules {
		if awssdk.ToString(r.GroupId) == groupID {
			rules = append(rules, r)
		}
	}
	return &awsec2.DescribeSecurityGroupRulesOutput{SecurityGroupRules: rules}, nil
}

func (f *fakeEC2) DescribeInternetGateways(ctx context.Context, params *awsec2.DescribeInternetGatewaysInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInternetGatewaysOutput, error) {
	if err := f.describeCall("DescribeInternetGateways"); err != nil {
		return nil, err
	}
	out := &awsec2.DescribeInternetGatewaysOutput{}
	for _, id := range f.igws {
		out.InternetGateways = append(out.InternetGateways, types.InternetGateway{InternetGatewayId: awssdk.String(id)})
	}
	return out, nil
}

func (f *fakeEC2) DescribeRouteTables(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error) {
	if err := f.describeCall("DescribeRouteTables"); err != nil {
		return nil, err
	}
	return &awsec2.DescribeRouteTablesOutput{RouteTables: f.rts}, nil
}

func (f *fakeEC2) DescribeNetworkAcls(ctx context.Context, params *awsec2.DescribeNetworkAclsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNetworkAclsOutput, error) {
	if err := f.describeCall("DescribeNetworkAcls"); err != nil {
		return nil, err
	}
	return &awsec2.DescribeNetworkAclsOutput{NetworkAcls: f.acls}, nil
}

func (f *fakeEC2) DetachInternetGateway(ctx context.Context, params *awsec2.DetachInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DetachInternetGatewayOutput, error) {
	if awssdk.ToString(params.VpcId) != f.vpcID {
		return nil, errors.New("detach from wrong VPC")
	}
	return &awsec2.DetachInternetGatewayOutput{}, f.call("DetachInternetGateway", awssdk.ToString(params.InternetGatewayId))
}

func (f *fakeEC2) DeleteInternetGateway(ctx context.Context, params *awsec2.DeleteInternetGatewayInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteInternetGatewayOutput, error) {
	return &awsec2.DeleteInternetGatewayOutput{}, f.call("DeleteInternetGateway", awssdk.ToString(params.InternetGatewayId))
}

func (f *fakeEC2) DeleteSubnet(ctx context.Context, params *awsec2.DeleteSubnetInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSubnetOutput, error) {
	return &awsec2.DeleteSubnetOutput{}, f.call("DeleteSubnet", awssdk.ToString(params.SubnetId))
}

func (f *fakeEC2) DeleteRouteTable(ctx context.Context, params *awsec2.DeleteRouteTableInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteRouteTableOutput, error) {
	return &awsec2.DeleteRouteTableOutput{}, f.call("DeleteRouteTable", awssdk.ToString(params.RouteTableId))
}

func (f *fakeEC2) DeleteNetworkAcl(ctx context.Context, params *awsec2.DeleteNetworkAclInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNetworkAclOutput, error) {
	return &awsec2.DeleteNetworkAclOutput{}, f.call("DeleteNetworkAcl", awssdk.ToString(params.NetworkAclId))
}

func (f *fakeEC2) DeleteNetworkAclEntry(ctx context.Context, params *awsec2.DeleteNetworkAclEntryInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteNetworkAclEntryOutput, error) {
	dir := "ingress"
	if awssdk.ToBool(params.Egress) {
		dir = "egress"
	}
	if awssdk.ToInt32(params.RuleNumber) != 100 {
		return nil, errors.New("unexpected rule number")
	}
	return &awsec2.DeleteNetworkAclEntryOutput{}, f.call("DeleteNetworkAclEntry", awssdk.ToString(params.NetworkAclId)+"/"+dir)
}

func (f *fakeEC2) DeleteSecurityGroup(ctx context.Context, params *awsec2.DeleteSecurityGroupInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error) {
	return &awsec2.DeleteSecurityGroupOutput{}, f.call("DeleteSecurityGroup", awssdk.ToString(params.GroupId))
}

func (f *fakeEC2) RevokeSecurityGroupIngress(ctx context.Context, params *awsec2.RevokeSecurityGroupIngressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error) {
	id := awssdk.ToString(params.GroupId) + "/" + strings.Join(params.SecurityGroupRuleIds, ",")
	return &awsec2.RevokeSecurityGroupIngressOutput{}, f.call("RevokeSecurityGroupIngress", id)
}

func (f *fakeEC2) RevokeSecurityGroupEgress(ctx context.Context, params *awsec2.RevokeSecurityGroupEgressInput, optFns ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupEgressOutput, error) {
	id := awssdk.ToString(params.GroupId) + "/" + strings.Join(params.SecurityGroupRuleIds, ",")
	return &awsec2.RevokeSecurityGroupEgressOutput{}, f.call("RevokeSecurityGroupEgress", id)
}

func (f *fakeEC2) DeleteVpc(ctx context.Context, params *awsec2.DeleteVpcInput, optFns ...func(*awsec2.Options)) (*awsec2.DeleteVpcOutput, error) {
	return &awsec2.DeleteVpcOutput{}, f.call("DeleteVpc", awssdk.ToString(params.VpcId))
}

// fakeSSM holds the public sharing setting of one region.
type fakeSSM struct {
	value   string
	getErr  error
	updates int
}

func (f *fakeSSM) GetServiceSetting(ctx context.Context, params *awsssmsdk.GetServiceSettingInput, optFns ...func(*awsssmsdk.Options)) (*awsssmsdk.GetServiceSettingOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &awsssmsdk.GetServiceSettingOutput{
		ServiceSetting: &ssmtypes.ServiceSetting{SettingId: params.SettingId, SettingValue: awssdk.String(f.value)},
	}, nil
}

func (f *fakeSSM) UpdateServiceSetting(ctx context.Context, params *awsssmsdk.UpdateServiceSettingInput, optFns ...func(*awsssmsdk.Options)) (*awsssmsdk.UpdateServiceSettingOutput, error) {
	f.updates++
	f.value = awssdk.ToString(params.SettingValue)
	return &awsssmsdk.UpdateServiceSettingOutput{}, nil
}

// memRecorder collects journal entries in memory.
type memRecorder struct {
	entries []journal.Entry
	err     error
}

func (m *memRecorder) Record(ctx context.Context, e journal.Entry) error {
	m.entries = append(m.entries, e)
	return m.err
}

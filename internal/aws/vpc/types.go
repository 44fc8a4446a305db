package vpc

// Resource kinds, as used in log fields, errors and the journal.
const (
	KindVPC               = "vpc"
	KindInternetGateway   = "internet-gateway"
	KindSubnet            = "subnet"
	KindRouteTable        = "route-table"
	KindNetworkACL        = "network-acl"
	KindNetworkACLEntry   = "network-acl-entry"
	KindSecurityGroup     = "security-group"
	KindSecurityGroupRule = "security-group-rule"
)

// DefaultRuleNumber is the number of the allow-all entry AWS provisions in
// both directions of a default network ACL.
const DefaultRuleNumber int32 = 100

// DefaultSecurityGroupName is the name AWS gives the undeletable group of every VPC.
const DefaultSecurityGroupName = "default"

type DefaultVPC struct {
	VPCID string
	CIDR  string
}

type InternetGateway struct {
	GatewayID string
}

type Subnet struct {
	SubnetID string
	AZ       string
}

type RouteTable struct {
	RouteTableID string
	IsMain       bool
}

// IsProtected reports whether the table is the VPC's main route table,
// which AWS only removes together with the VPC.
func (r RouteTable) IsProtected() bool {
	return r.IsMain
}

type NetworkACL struct {
	NACLID    string
	IsDefault bool
}

// IsProtected reports whether the ACL is the VPC's default ACL.
func (n NetworkACL) IsProtected() bool {
	return n.IsDefault
}

type SecurityGroup struct {
	GroupID string
	Name    string
}

// IsProtected reports whether the group is the VPC's "default" group.
func (s SecurityGroup) IsProtected() bool {
	return s.Name == DefaultSecurityGroupName
}

type SecurityGroupRule struct {
	RuleID   string
	GroupID  string
	IsEgress bool
	Protocol string // all, tcp, udp, icmp, or the raw number
}

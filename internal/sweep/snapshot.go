package sweep

import (
	"context"

	awsvpc "tasnim.dev/vpc-sweep/internal/aws/vpc"
)

// Snapshot is the default VPC of one region and the objects inside it, as
// seen when it was built. Engines change the remote state, never the
// snapshot, so a snapshot must not be reused after an engine ran.
type Snapshot struct {
	Region string
	VPCID  string
	CIDR   string

	InternetGateways []awsvpc.InternetGateway
	DefaultSubnets   []awsvpc.Subnet
	RouteTables      []awsvpc.RouteTable
	NetworkACLs      []awsvpc.NetworkACL
	SecurityGroups   []awsvpc.SecurityGroup
}

// HasDefaultVPC reports whether the region has a default VPC.
func (s *Snapshot) HasDefaultVPC() bool {
	return s.VPCID != ""
}

// Discover builds the snapshot of region. A region without a default VPC
// yields an empty snapshot and no error.
func Discover(ctx context.Context, region string, client *awsvpc.Client) (*Snapshot, error) {
	snap := &Snapshot{Region: region}

	vpc, err := client.FindDefaultVPC(ctx)
	if err != nil {
		return nil, &DiscoveryError{Region: region, Err: err}
	}
	if vpc == nil {
		return snap, nil
	}
	snap.VPCID = vpc.VPCID
	snap.CIDR = vpc.CIDR

	if snap.InternetGateways, err = client.ListInternetGateways(ctx, vpc.VPCID); err != nil {
		return nil, &DiscoveryError{Region: region, Err: err}
	}
	if snap.DefaultSubnets, err = client.ListDefaultSubnets(ctx, vpc.VPCID); err != nil {
		return nil, &DiscoveryError{Region: region, Err: err}
	}
	if snap.RouteTables, err = client.ListRouteTables(ctx, vpc.VPCID); err != nil {
		return nil, &DiscoveryError{Region: region, Err: err}
	}
	if snap.NetworkACLs, err = client.ListNetworkACLs(ctx, vpc.VPCID); err != nil {
		return nil, &DiscoveryError{Region: region, Err: err}
	}
	if snap.SecurityGroups, err = client.ListSecurityGroups(ctx, vpc.VPCID); err != nil {
		return nil, &DiscoveryError{Region: region, Err: err}
	}
	return snap, nil
}

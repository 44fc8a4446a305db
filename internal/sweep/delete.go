package sweep

import (
	"context"

	"github.com/rs/zerolog"

	awsvpc "tasnim.dev/vpc-sweep/internal/aws/vpc"
)

// DeleteEngine removes a default VPC and everything under it.
type DeleteEngine struct {
	engine
}

func NewDeleteEngine(client *awsvpc.Client, snap *Snapshot, log zerolog.Logger, opts ...EngineOption) *DeleteEngine {
	return &DeleteEngine{engine: newEngine(client, snap, log, opts)}
}

// DeleteResources runs the deletion steps in the only order EC2 accepts and
// stops at the first failure. The main route table, default NACL and default
// security group are skipped; AWS removes them with the VPC.
func (e *DeleteEngine) DeleteResources(ctx context.Context) (bool, error) {
	if !e.snap.HasDefaultVPC() {
		return false, ErrNoDefaultVPC
	}

	steps := []func(context.Context) error{
		e.deleteInternetGateways,
		e.deleteSubnets,
		e.deleteRouteTables,
		e.deleteNetworkACLs,
		e.deleteSecurityGroups,
		e.deleteVPC,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return false, err
		}
	}
	return true, nil
}

// An attached gateway cannot be deleted, so each one is detached first.
func (e *DeleteEngine) deleteInternetGateways(ctx context.Context) error {
	for _, igw := range e.snap.InternetGateways {
		id := igw.GatewayID
		err := e.mutate(ctx, awsvpc.KindInternetGateway, id, "detach", func(ctx context.Context) error {
			return e.client.DetachInternetGateway(ctx, id, e.snap.VPCID)
		})
		if err != nil {
			return err
		}
		err = e.mutate(ctx, awsvpc.KindInternetGateway, id, "delete", func(ctx context.Context) error {
			return e.client.DeleteInternetGateway(ctx, id)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *DeleteEngine) deleteSubnets(ctx context.Context) error {
	for _, subnet := range e.snap.DefaultSubnets {
		id := subnet.SubnetID
		err := e.mutate(ctx, awsvpc.KindSubnet, id, "delete", func(ctx context.Context) error {
			return e.client.DeleteSubnet(ctx, id)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *DeleteEngine) deleteRouteTables(ctx context.Context) error {
	for _, rt := range e.snap.RouteTables {
		id := rt.RouteTableID
		if rt.IsProtected() {
			e.skip(awsvpc.KindRouteTable, id, "main route table")
			continue
		}
		err := e.mutate(ctx, awsvpc.KindRouteTable, id, "delete", func(ctx context.Context) error {
			return e.client.DeleteRouteTable(ctx, id)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *DeleteEngine) deleteNetworkACLs(ctx context.Context) error {
	for _, acl := range e.snap.NetworkACLs {
		id := acl.NACLID
		if acl.IsProtected() {
			e.skip(awsvpc.KindNetworkACL, id, "default network ACL")
			continue
		}
		err := e.mutate(ctx, awsvpc.KindNetworkACL, id, "delete", func(ctx context.Context) error {
			return e.client.DeleteNetworkACL(ctx, id)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *DeleteEngine) deleteSecurityGroups(ctx context.Context) error {
	for _, sg := range e.snap.SecurityGroups {
		id := sg.GroupID
		if sg.IsProtected() {
			e.skip(awsvpc.KindSecurityGroup, id, "default security group")
			continue
		}
		err := e.mutate(ctx, awsvpc.KindSecurityGroup, id, "delete", func(ctx context.Context) error {
			return e.client.DeleteSecurityGroup(ctx, id)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *DeleteEngine) deleteVPC(ctx context.Context) error {
	return e.mutate(ctx, awsvpc.KindVPC, e.snap.VPCID, "delete", func(ctx context.Context) error {
		return e.client.DeleteVPC(ctx, e.snap.VPCID)
	})
}

func (e *DeleteEngine) skip(kind, id, reason string) {
	e.log.Info().Str("kind", kind).Str("id", id).Msgf("%s cannot be removed, continuing", reason)
}

package sweep

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	awsvpc "tasnim.dev/vpc-sweep/internal/aws/vpc"
)

// ModifyEngine strips the rules of the default NACL and the default
// security group, which cannot be deleted while the VPC exists.
type ModifyEngine struct {
	engine
}

func NewModifyEngine(client *awsvpc.Client, snap *Snapshot, log zerolog.Logger, opts ...EngineOption) *ModifyEngine {
	return &ModifyEngine{engine: newEngine(client, snap, log, opts)}
}

// ModifyResources removes the allow-all entries of the default NACL and
// revokes every rule of the default security group. Only those two are
// touched. The first failure is returned and nothing after it is attempted.
func (e *ModifyEngine) ModifyResources(ctx context.Context) (bool, error) {
	if !e.snap.HasDefaultVPC() {
		return false, ErrNoDefaultVPC
	}

	for _, acl := range e.snap.NetworkACLs {
		if !acl.IsProtected() {
			e.log.Debug().Str("kind", awsvpc.KindNetworkACL).Str("id", acl.NACLID).Msg("custom network ACL left as is")
			continue
		}
		if err := e.stripNetworkACL(ctx, acl.NACLID); err != nil {
			return false, err
		}
	}

	for _, sg := range e.snap.SecurityGroups {
		if !sg.IsProtected() {
			e.log.Debug().Str("kind", awsvpc.KindSecurityGroup).Str("id", sg.GroupID).Msg("custom security group left as is")
			continue
		}
		if err := e.stripSecurityGroup(ctx, sg.GroupID); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (e *ModifyEngine) stripNetworkACL(ctx context.Context, naclID string) error {
	directions := []struct {
		op     string
		egress bool
	}{
		{op: "delete-entry-ingress", egress: false},
		{op: "delete-entry-egress", egress: true},
	}

	for _, d := range directions {
		egress := d.egress
		err := e.mutate(ctx, awsvpc.KindNetworkACLEntry, naclID, d.op, func(ctx context.Context) error {
			err := e.client.DeleteNetworkACLEntry(ctx, naclID, awsvpc.DefaultRuleNumber, egress)
			if awsvpc.IsNotFound(err) {
				e.log.Info().Str("id", naclID).Bool("egress", egress).Msg("default entry already removed")
				return nil
			}
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *ModifyEngine) stripSecurityGroup(ctx context.Context, groupID string) error {
	rules, err := e.client.ListSecurityGroupRules(ctx, groupID)
	if err != nil {
		return &MutationError{Kind: awsvpc.KindSecurityGroupRule, ID: groupID, Op: "describe", Err: err}
	}

	var ingress, egress []string
	for _, r := range rules {
		if r.IsEgress {
			egress = append(egress, r.RuleID)
		} else {
			ingress = append(ingress, r.RuleID)
		}
		e.log.Debug().Str("group", groupID).Str("rule", r.RuleID).Str("protocol", r.Protocol).Bool("egress", r.IsEgress).Msg("rule found")
	}

	if len(ingress) == 0 && len(egress) == 0 {
		e.log.Info().Str("kind", awsvpc.KindSecurityGroup).Str("id", groupID).Msg("default security group has no rules")
		return nil
	}

	if len(ingress) > 0 {
		err := e.mutate(ctx, awsvpc.KindSecurityGroup, groupID, "revoke-ingress", func(ctx context.Context) error {
			e.log.Info().Str("rules", strings.Join(ingress, ",")).Msg("revoking ingress rules")
			return e.client.RevokeIngress(ctx, groupID, ingress)
		})
		if err != nil {
			return err
		}
	}
	if len(egress) > 0 {
		err := e.mutate(ctx, awsvpc.KindSecurityGroup, groupID, "revoke-egress", func(ctx context.Context) error {
			e.log.Info().Str("rules", strings.Join(egress, ",")).Msg("revoking egress rules")
			return e.client.RevokeEgress(ctx, groupID, egress)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

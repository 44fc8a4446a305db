package tui

import (
	"fmt"

	"tasnim.dev/vpc-sweep/internal/sweep"
	"tasnim.dev/vpc-sweep/internal/tui/theme"
	"tasnim.dev/vpc-sweep/internal/utils"
)

// RenderSnapshot renders the default VPC of one region. Resources the delete
// action leaves to AWS are marked protected.
func RenderSnapshot(s *sweep.Snapshot) string {
	title := theme.DashboardTitleStyle.Render(s.Region)
	if !s.HasDefaultVPC() {
		return boxStyle.Render(title + "\n" + labelStyle.Render("No default VPC"))
	}

	header := boxStyle.Render(title + "\n" + fmt.Sprintf("VPC: %s  CIDR: %s", s.VPCID, utils.OrDash(s.CIDR)))

	db := utils.NewDetailBuilder(24, labelStyle, titleStyle)

	db.Section("Internet Gateways", len(s.InternetGateways))
	for _, igw := range s.InternetGateways {
		db.Row(igw.GatewayID, removable())
	}

	db.Section("Default Subnets", len(s.DefaultSubnets))
	for _, sn := range s.DefaultSubnets {
		db.Row(sn.SubnetID, removable()+labelStyle.Render("  "+sn.AZ))
	}

	db.Section("Route Tables", len(s.RouteTables))
	for _, rt := range s.RouteTables {
		db.Row(rt.RouteTableID, mark(rt.IsProtected(), "main"))
	}

	db.Section("Network ACLs", len(s.NetworkACLs))
	for _, acl := range s.NetworkACLs {
		db.Row(acl.NACLID, mark(acl.IsProtected(), "default"))
	}

	db.Section("Security Groups", len(s.SecurityGroups))
	for _, sg := range s.SecurityGroups {
		db.Row(sg.GroupID, mark(sg.IsProtected(), "default")+labelStyle.Render("  "+sg.Name))
	}

	return header + "\n" + db.String()
}

func removable() string {
	return theme.RenderStatus("removable")
}

func mark(protected bool, reason string) string {
	if !protected {
		return removable()
	}
	return theme.RenderStatus("protected") + labelStyle.Render(" ("+reason+")")
}

package tui

import (
	"fmt"
	"strings"

	"tasnim.dev/vpc-sweep/internal/sweep"
	"tasnim.dev/vpc-sweep/internal/tui/theme"
	"tasnim.dev/vpc-sweep/internal/utils"
)

var summaryColumns = []string{"REGION", "STATUS", "VPC", "MUTATIONS", "SSM SHARING"}

// RenderSummary renders the per-region results of a sanitize run followed by
// the errors of failed regions.
func RenderSummary(s sweep.Summary) string {
	var b strings.Builder

	title := "vpc-sweep " + string(s.Action)
	if s.DryRun {
		title += " " + dryRunStyle.Render("(dry run)")
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if len(s.Results) == 0 {
		b.WriteString(labelStyle.Render("No regions processed") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			r.Region,
			string(r.Status),
			utils.OrDash(r.VPCID),
			fmt.Sprintf("%d", r.Mutations),
			ssmLabel(r),
		})
	}

	widths := columnWidths(summaryColumns, rows)
	b.WriteString(headerStyle.Render(padRow(summaryColumns, widths)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			padded := fmt.Sprintf("%-*s", widths[i], cell)
			switch i {
			case 1, 4:
				cells[i] = theme.RenderStatus(padded)
			default:
				cells[i] = padded
			}
		}
		b.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s completed  %s skipped  %s failed\n",
		countStyle.Render(fmt.Sprintf("%d", s.Count(sweep.StatusCompleted))),
		countStyle.Render(fmt.Sprintf("%d", s.Count(sweep.StatusSkipped))),
		countStyle.Render(fmt.Sprintf("%d", s.Count(sweep.StatusFailed))),
	))

	failed := s.Failed()
	if len(failed) > 0 {
		b.WriteString("\n" + errorStyle.Render("Errors") + "\n")
		for _, r := range failed {
			if r.Err != nil {
				b.WriteString(fmt.Sprintf("  %s: %v\n", r.Region, r.Err))
			}
			if r.SSMErr != nil {
				b.WriteString(fmt.Sprintf("  %s: ssm: %v\n", r.Region, r.SSMErr))
			}
		}
	}
	return b.String()
}

func ssmLabel(r sweep.RegionResult) string {
	if r.SSMErr != nil {
		return "error"
	}
	return string(r.SSM)
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	return widths
}

func padRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	return strings.Join(padded, "  ")
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/vpc-sweep/internal/aws"
	"tasnim.dev/vpc-sweep/internal/journal"
	"tasnim.dev/vpc-sweep/internal/sweep"
	"tasnim.dev/vpc-sweep/internal/tui"
	"tasnim.dev/vpc-sweep/internal/utils"
)

func NewSanitizeCmd() *cobra.Command {
	var flags commonFlags
	var option string
	var dryRun bool
	var yes bool
	var journalPath string

	cmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Delete or strip the default VPC in every selected region",
		Long: `sanitize blocks public sharing of SSM documents in every selected region, then
applies the chosen action to the region's default VPC:

  delete  remove the internet gateway, default subnets, non-main route tables,
          non-default network ACLs, non-default security groups and the VPC
  modify  keep the VPC but remove the allow-all entries of the default network
          ACL and every rule of the default security group`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := sweep.ParseAction(option)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, flags, journalPath)
			if err != nil {
				return err
			}
			log := s.log

			if action == sweep.ActionDelete && !yes && !dryRun {
				ok, err := tui.Confirm(
					fmt.Sprintf("Delete the default VPC in %s?", utils.Plural(len(s.regions), "region")),
					strings.Join(s.regions, ", "),
				)
				if err != nil {
					return err
				}
				if !ok {
					log.Info().Msg("aborted, no changes made")
					return nil
				}
			}

			runner := &sweep.Runner{
				Action: action,
				DryRun: dryRun,
				Log:    log,
				RunID:  utils.RunID(time.Now()),
				Clients: func(region string) *awsclient.RegionClients {
					return awsclient.NewRegionClients(s.aws, region, dryRun)
				},
			}

			if s.cfg.JournalPath != "" {
				j, err := journal.Open(ctx, s.cfg.JournalPath)
				if err != nil {
					return err
				}
				defer j.Close()
				runner.Recorder = j
				log.Info().Str("journal", s.cfg.JournalPath).Str("run_id", runner.RunID).Msg("recording mutations")
			}

			log.Info().
				Str("action", string(action)).
				Bool("dry_run", dryRun).
				Int("regions", len(s.regions)).
				Msg("starting")

			summary := runner.Run(ctx, s.regions)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(summary))

			if err := ctx.Err(); err != nil {
				return fmt.Errorf("run interrupted after %s: %w", utils.Plural(len(summary.Results), "region"), err)
			}
			if failed := summary.Failed(); len(failed) > 0 {
				names := make([]string, len(failed))
				for i, r := range failed {
					names[i] = r.Region
				}
				return fmt.Errorf("%s failed: %s", utils.Plural(len(failed), "region"), strings.Join(names, ", "))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&option, "option", "o", "", "action to apply: delete or modify")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "send every EC2 call with DryRun set and skip the SSM update")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the delete confirmation prompt")
	cmd.Flags().StringVar(&journalPath, "journal", "", "sqlite file to record every mutation in")
	_ = cmd.MarkFlagRequired("option")

	return cmd
}

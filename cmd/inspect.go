package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/vpc-sweep/internal/aws"
	"tasnim.dev/vpc-sweep/internal/sweep"
	"tasnim.dev/vpc-sweep/internal/tui"
	"tasnim.dev/vpc-sweep/internal/utils"
)

func NewInspectCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:          "inspect",
		Short:        "Show the default VPC of every selected region without changing anything",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, flags, "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed []string
			for _, region := range s.regions {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				clients := awsclient.NewRegionClients(s.aws, region, false)
				snap, err := sweep.Discover(ctx, region, clients.VPC)
				if err != nil {
					s.log.Error().Err(err).Str("region", region).Msg("discovery failed")
					failed = append(failed, region)
					continue
				}
				fmt.Fprintln(out, tui.RenderSnapshot(snap))
			}

			if len(failed) > 0 {
				return fmt.Errorf("discovery failed in %s: %v", utils.Plural(len(failed), "region"), failed)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

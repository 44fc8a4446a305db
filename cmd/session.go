package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	awsclient "tasnim.dev/vpc-sweep/internal/aws"
	"tasnim.dev/vpc-sweep/internal/config"
	"tasnim.dev/vpc-sweep/internal/logging"
)

// commonFlags are shared by every subcommand that talks to AWS.
type commonFlags struct {
	profile    string
	regions    []string
	configPath string
	logLevel   string
	logFormat  string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringSliceVarP(&f.regions, "region", "r", nil, "regions to process (default: all enabled regions)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default ~/.config/vpc-sweep/config.yaml)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "log format: console or json")
}

// session is the resolved configuration of one command invocation.
type session struct {
	cfg     config.Config
	log     zerolog.Logger
	aws     aws.Config
	regions []string
}

// openSession loads the config file, builds the logger, loads AWS
// credentials and resolves the regions to process.
func openSession(ctx context.Context, f commonFlags, journal string) (*session, error) {
	fileCfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := fileCfg.Merge(config.Overrides{
		Profile:   f.profile,
		LogLevel:  f.logLevel,
		LogFormat: f.logFormat,
		Journal:   journal,
	})

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsclient.LoadConfig(ctx, cfg.DefaultProfile, "")
	if err != nil {
		return nil, err
	}

	logCtx := log.With()
	if cfg.DefaultProfile != "" {
		logCtx = logCtx.Str("profile", cfg.DefaultProfile)
	}
	if accountID := awsclient.GetAccountID(ctx, awsCfg); accountID != "" {
		logCtx = logCtx.Str("account", accountID)
	}
	log = logCtx.Logger()

	available, err := awsclient.NewRegionSource(awsCfg).ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}

	regions, unknown := cfg.SelectRegions(available, f.regions)
	for _, r := range unknown {
		log.Warn().Str("region", r).Msg("region not enabled for this account, ignoring")
	}
	if len(regions) == 0 {
		return nil, errors.New("no regions selected")
	}
	log.Debug().Strs("regions", regions).Msg("regions selected")

	return &session{cfg: cfg, log: log, aws: awsCfg, regions: regions}, nil
}

package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	awsclient "tasnim.dev/vpc-sweep/internal/aws"
	awsssm "tasnim.dev/vpc-sweep/internal/aws/ssm"
	"tasnim.dev/vpc-sweep/internal/journal"
)

// Status is the outcome of the VPC step for one region.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped" // no default VPC
	StatusFailed    Status = "failed"
)

const kindSSMSetting = "ssm-setting"

// RegionResult is what happened in one region.
type RegionResult struct {
	Region    string
	Status    Status
	VPCID     string
	Mutations int
	Err       error

	SSM    awsssm.Outcome
	SSMErr error
}

// Failed reports whether any step of the region failed.
func (r RegionResult) Failed() bool {
	return r.Err != nil || r.SSMErr != nil
}

type Summary struct {
	Action  Action
	DryRun  bool
	Results []RegionResult
}

// Failed returns the regions where any step failed.
func (s Summary) Failed() []RegionResult {
	var failed []RegionResult
	for _, r := range s.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Count returns how many regions ended with status st.
func (s Summary) Count(st Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// ClientFactory returns the clients for a region.
type ClientFactory func(region string) *awsclient.RegionClients

// Runner applies an action to a list of regions, one region at a time.
// A failure in one region is recorded and the next region is processed.
type Runner struct {
	Action   Action
	DryRun   bool
	Clients  ClientFactory
	Log      zerolog.Logger
	Recorder Recorder // optional
	RunID    string
}

func (r *Runner) Run(ctx context.Context, regions []string) Summary {
	summary := Summary{Action: r.Action, DryRun: r.DryRun}

	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			r.Log.Warn().Err(err).Str("region", region).Msg("run cancelled, remaining regions not processed")
			break
		}
		res := r.RunRegion(ctx, region)
		summary.Results = append(summary.Results, res)
	}
	return summary
}

// RunRegion checks the SSM sharing setting, then applies the action to the
// region's default VPC if there is one.
func (r *Runner) RunRegion(ctx context.Context, region string) RegionResult {
	log := r.Log.With().Str("region", region).Logger()
	clients := r.Clients(region)
	res := RegionResult{Region: region}

	res.SSM, res.SSMErr = r.checkSSM(ctx, log, clients.SSM, region)

	snap, err := Discover(ctx, region, clients.VPC)
	if err != nil {
		log.Error().Err(err).Msg("discovery failed")
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	if !snap.HasDefaultVPC() {
		log.Info().Msg("no default VPC, skipping")
		res.Status = StatusSkipped
		return res
	}
	res.VPCID = snap.VPCID

	log.Info().Str("action", string(r.Action)).Str("vpc", snap.VPCID).Msg("performing action")

	var opts []EngineOption
	if r.Recorder != nil {
		opts = append(opts, WithRecorder(r.Recorder, r.RunID))
	}

	switch r.Action {
	case ActionDelete:
		e := NewDeleteEngine(clients.VPC, snap, r.Log, opts...)
		_, err = e.DeleteResources(ctx)
		res.Mutations = e.Mutations()
	case ActionModify:
		e := NewModifyEngine(clients.VPC, snap, r.Log, opts...)
		_, err = e.ModifyResources(ctx)
		res.Mutations = e.Mutations()
	default:
		err = fmt.Errorf("%w %q", ErrInvalidAction, r.Action)
	}

	if err != nil {
		var mErr *MutationError
		if errors.As(err, &mErr) {
			log.Error().Err(mErr.Err).Str("kind", mErr.Kind).Str("id", mErr.ID).Msg("action aborted for region")
		} else {
			log.Error().Err(err).Msg("action aborted for region")
		}
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	res.Status = StatusCompleted
	log.Info().Str("action", string(r.Action)).Int("mutations", res.Mutations).Msg("all actions performed")
	return res
}

func (r *Runner) checkSSM(ctx context.Context, log zerolog.Logger, client *awsssm.Client, region string) (awsssm.Outcome, error) {
	outcome, observed, err := client.BlockPublicSharing(ctx)
	if err != nil {
		log.Error().Err(err).Msg("SSM public sharing check failed")
		return "", err
	}

	switch outcome {
	case awsssm.OutcomeDisabled:
		log.Info().Str("previous", observed).Msg("SSM document public sharing updated to Disable")
	case awsssm.OutcomeWouldDisable:
		log.Info().Str("current", observed).Msg("SSM document public sharing would be updated to Disable")
	default:
		log.Info().Str("current", observed).Msg("SSM document public sharing already blocked, no action taken")
		return outcome, nil
	}

	if r.Recorder != nil {
		err := r.Recorder.Record(ctx, journal.Entry{
			RunID:      r.RunID,
			Region:     region,
			Kind:       kindSSMSetting,
			ResourceID: awsssm.PublicSharingSettingID,
			Operation:  "update-setting",
			DryRun:     r.DryRun,
		})
		if err != nil {
			log.Warn().Err(err).Msg("journal write failed")
		}
	}
	return outcome, nil
}

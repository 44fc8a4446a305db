package sweep

import (
	"context"

	"github.com/rs/zerolog"

	awsvpc "tasnim.dev/vpc-sweep/internal/aws/vpc"
	"tasnim.dev/vpc-sweep/internal/journal"
)

// Recorder receives every attempted mutation. *journal.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

type EngineOption func(*engine)

// WithRecorder sends every mutation attempt to rec under runID.
func WithRecorder(rec Recorder, runID string) EngineOption {
	return func(e *engine) {
		e.rec = rec
		e.runID = runID
	}
}

// engine holds what DeleteEngine and ModifyEngine share.
type engine struct {
	client    *awsvpc.Client
	snap      *Snapshot
	log       zerolog.Logger
	rec       Recorder
	runID     string
	mutations int
}

func newEngine(client *awsvpc.Client, snap *Snapshot, log zerolog.Logger, opts []EngineOption) engine {
	e := engine{
		client: client,
		snap:   snap,
		log:    log.With().Str("region", snap.Region).Str("vpc", snap.VPCID).Logger(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Mutations returns how many mutation calls were issued so far.
func (e *engine) Mutations() int {
	return e.mutations
}

// mutate issues one mutation call, logging the attempt and the result and
// recording it. A failure comes back as *MutationError.
func (e *engine) mutate(ctx context.Context, kind, id, op string, call func(context.Context) error) error {
	log := e.log.With().Str("kind", kind).Str("id", id).Str("op", op).Logger()
	log.Info().Bool("dry_run", e.client.DryRun()).Msg("attempting")

	err := call(ctx)
	e.mutations++
	e.record(ctx, kind, id, op, err)

	if err != nil {
		log.Error().Err(err).Msg("failed")
		return &MutationError{Kind: kind, ID: id, Op: op, Err: err}
	}
	log.Info().Msg("succeeded")
	return nil
}

func (e *engine) record(ctx context.Context, kind, id, op string, callErr error) {
	if e.rec == nil {
		return
	}
	entry := journal.Entry{
		RunID:      e.runID,
		Region:     e.snap.Region,
		Kind:       kind,
		ResourceID: id,
		Operation:  op,
		DryRun:     e.client.DryRun(),
	}
	if callErr != nil {
		entry.Err = callErr.Error()
	}
	if err := e.rec.Record(ctx, entry); err != nil {
		e.log.Warn().Err(err).Msg("journal write failed")
	}
}

package sweep

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned by ParseAction for anything but delete or modify.
var ErrInvalidAction = errors.New("invalid action")

// ErrNoDefaultVPC is returned when an engine is handed a snapshot without a
// default VPC. The runner never gets here: an empty snapshot is a skip.
var ErrNoDefaultVPC = errors.New("no default VPC")

// DiscoveryError means the snapshot of a region could not be built.
type DiscoveryError struct {
	Region string
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovering default VPC in %s: %v", e.Region, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// MutationError means a delete, revoke or update call failed. It aborts the
// remaining steps of the region.
type MutationError struct {
	Kind string
	ID   string
	Op   string
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSlot is returned when labware is assigned to a slot that does
// not exist on the current model's deck. The transition is rejected and the
// state left unchanged.
var ErrInvalidSlot = errors.New("invalid deck slot for current robot model")

// ErrInvalidInstrument is returned when a pipette is assigned that the
// current robot model cannot mount.
var ErrInvalidInstrument = errors.New("instrument not available on current robot model")

// ErrConfigNotFound is returned by a ConfigStore when no durable hardware
// configuration entry exists.
var ErrConfigNotFound = errors.New("hardware configuration not found")

// ErrStageBusy is returned when a pipeline stage is triggered while a call
// for the same stage is still in flight.
var ErrStageBusy = errors.New("stage already in flight")

// PreconditionError signals that a pipeline stage was triggered before its
// prerequisite input existed. It is resolved at the orchestration boundary;
// no network call is made.
type PreconditionError struct {
	Missing string // the missing input, e.g. "goal" or "sop"
}

func (e *PreconditionError) Error() string {
	return "missing " + e.Missing
}

// RequestError reports a transport failure or a non-success HTTP status
// from the generation service.
type RequestError struct {
	Status int    // HTTP status code, 0 for transport failures
	Detail string // server-provided detail, verbatim
	Err    error  // underlying transport error, if any
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("service request failed: %v", e.Err)
	case e.Detail != "":
		return fmt.Sprintf("service returned HTTP %d: %s", e.Status, e.Detail)
	default:
		return fmt.Sprintf("service returned HTTP %d", e.Status)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response body that could not be decoded
// or was missing required fields.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed service response: %s: %v", e.Reason, e.Err)
	}
	return "malformed service response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

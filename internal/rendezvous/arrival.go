// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import (
	"context"
	"fmt"
	"time"

	"github.com/websync/websync/internal/logging"
)

// DefaultWaitTimeout bounds how long a participant waits for its counterpart.
const DefaultWaitTimeout = 10 * time.Second

// Outcome tells whether an arrival met its counterpart.
type Outcome int

const (
	// OutcomeRendezvoused means the counterpart had checked in when the
	// arrival finished.
	OutcomeRendezvoused Outcome = iota
	// OutcomeProceededAlone means the wait ended without the counterpart.
	OutcomeProceededAlone
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendezvoused:
		return "rendezvoused"
	case OutcomeProceededAlone:
		return "proceeded_alone"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes one completed arrival.
type Result struct {
	Participant Participant
	Outcome     Outcome
	// Waited is zero when the counterpart was already there.
	Waited time.Duration
	// Notified is set when the wait was ended by a notification rather than
	// the timeout.
	Notified bool
}

// Message is the body text rendered for the caller.
func (r Result) Message() string {
	if r.Outcome == OutcomeRendezvoused {
		return fmt.Sprintf("%s completed", r.Participant.ServiceName())
	}
	return fmt.Sprintf("%s completed without %s", r.Participant.ServiceName(), r.Participant.Counterpart().ServiceName())
}

// Firer requests process termination. Calls after the first are no-ops.
type Firer interface {
	Fire()
}

// Recorder observes arrivals. Implemented by the metrics package.
type Recorder interface {
	Arrival(participant string)
	Outcome(participant, outcome string, waited time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) Arrival(string)                         {}
func (noopRecorder) Outcome(string, string, time.Duration) {}

// Arriver runs the check-in protocol for both participants against a shared
// State.
type Arriver struct {
	state    *State
	shutdown Firer
	timeout  time.Duration
	recorder Recorder
}

type ArriverOption func(*Arriver)

// WithRecorder attaches an arrival observer.
func WithRecorder(r Recorder) ArriverOption {
	return func(a *Arriver) {
		a.recorder = r
	}
}

// NewArriver returns an Arriver. A non-positive timeout selects
// DefaultWaitTimeout.
func NewArriver(state *State, shutdown Firer, timeout time.Duration, opts ...ArriverOption) *Arriver {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	a := &Arriver{
		state:    state,
		shutdown: shutdown,
		timeout:  timeout,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Arriver) Timeout() time.Duration {
	return a.timeout
}

// Arrive checks p in, waits up to the timeout for the counterpart unless it
// is already there, and requests termination once both have arrived. The
// counterpart slot is always re-read after the wait, whichever way it ended.
func (a *Arriver) Arrive(ctx context.Context, p Participant) (Result, error) {
	counterpartArrived, waiter, err := a.state.checkIn(p)
	if err != nil {
		return Result{}, err
	}
	a.recorder.Arrival(p.String())

	counterpart := p.Counterpart()
	logger := logging.FromContext(ctx).WithField(logging.ParticipantField, p.String())
	logger.Infof("%s called. Waiting for %s...", p.ServiceName(), counterpart.ServiceName())

	result := Result{Participant: p}
	if !counterpartArrived {
		start := time.Now()
		result.Notified = waiter.Wait(a.timeout)
		result.Waited = time.Since(start)

		if result.Notified {
			logger.Infof("Woken by an arrival. Re-checking %s.", counterpart.ServiceName())
		} else {
			logger.Infof("Timeout reached. Proceeding without %s.", counterpart.ServiceName())
		}
	}

	if a.state.Arrived(counterpart) {
		logger.Infof("%s was called. Proceeding.", counterpart.ServiceName())
		a.shutdown.Fire()
		result.Outcome = OutcomeRendezvoused
	} else {
		result.Outcome = OutcomeProceededAlone
	}

	a.recorder.Outcome(p.String(), result.Outcome.String(), result.Waited)
	return result, nil
}

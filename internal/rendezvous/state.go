// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import (
	"fmt"
	"sync"
)

// Phase is the process state derived from the two arrival slots and the
// termination signal.
type Phase int

const (
	WaitingBoth Phase = iota
	WaitingOne
	Rendezvoused
	Terminated
)

func (p Phase) String() string {
	switch p {
	case WaitingBoth:
		return "WaitingBoth"
	case WaitingOne:
		return "WaitingOne"
	case Rendezvoused:
		return "Rendezvoused"
	case Terminated:
		return "Terminated"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State holds one arrival slot per participant and the wake-one notifier
// associated with "a slot just flipped to arrived". Slots only ever go from
// false to true.
type State struct {
	mu      sync.Mutex
	arrived [2]bool
	notify  *Notifier
}

func NewState() *State {
	return &State{notify: NewNotifier()}
}

// checkIn marks p as arrived and emits one wake-one notification, then reads
// the counterpart slot, all under the state lock. When the counterpart is
// still missing a waiter is enrolled before the lock is released; the caller
// waits on it outside the lock.
func (s *State) checkIn(p Participant) (counterpartArrived bool, w *Waiter, err error) {
	if !p.Valid() {
		return false, nil, fmt.Errorf("%w: %v", ErrUnknownParticipant, p)
	}

	s.withLock(func() {
		s.arrived[p] = true
		s.notify.NotifyOne()

		counterpartArrived = s.arrived[p.Counterpart()]
		if !counterpartArrived {
			w = s.notify.Enroll()
		}
	})
	return counterpartArrived, w, nil
}

// Arrived reports whether p has checked in.
func (s *State) Arrived(p Participant) bool {
	if !p.Valid() {
		return false
	}
	var arrived bool
	s.withLock(func() {
		arrived = s.arrived[p]
	})
	return arrived
}

// Phase derives WaitingBoth, WaitingOne or Rendezvoused from the slots.
func (s *State) Phase() Phase {
	var a, b bool
	s.withLock(func() {
		a, b = s.arrived[A], s.arrived[B]
	})
	switch {
	case a && b:
		return Rendezvoused
	case a || b:
		return WaitingOne
	default:
		return WaitingBoth
	}
}

// withLock runs fn holding the state lock. The lock is released even when fn
// panics, so a failed request never wedges the counterpart.
func (s *State) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

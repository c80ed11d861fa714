// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import (
	"errors"
	"fmt"
)

// Participant identifies one of the two parties meeting at the rendezvous.
type Participant int

const (
	// A is checked in by the first trigger point (service1).
	A Participant = iota
	// B is checked in by the second trigger point (service2).
	B
)

// ErrUnknownParticipant is returned for identities other than A and B.
var ErrUnknownParticipant = errors.New("unknown participant")

// Valid reports whether p is A or B.
func (p Participant) Valid() bool {
	return p == A || p == B
}

// Counterpart returns the participant p is waiting for.
func (p Participant) Counterpart() Participant {
	if p == A {
		return B
	}
	return A
}

// ServiceName is the human readable name used in responses and logs.
func (p Participant) ServiceName() string {
	switch p {
	case A:
		return "Service 1"
	case B:
		return "Service 2"
	}
	return fmt.Sprintf("Service(%d)", int(p))
}

func (p Participant) String() string {
	switch p {
	case A:
		return "service1"
	case B:
		return "service2"
	}
	return fmt.Sprintf("Participant(%d)", int(p))
}

// ParseParticipant maps "service1"/"service2" back to a Participant.
func ParseParticipant(name string) (Participant, error) {
	switch name {
	case A.String():
		return A, nil
	case B.String():
		return B, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
}

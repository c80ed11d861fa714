// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import (
	time "time"

	mock "github.com/stretchr/testify/mock"
)

type MockRecorder struct {
	mock.Mock
}

func (_m *MockRecorder) Arrival(participant string) {
	_m.Called(participant)
}

func (_m *MockRecorder) Outcome(participant string, outcome string, waited time.Duration) {
	_m.Called(participant, outcome, waited)
}

func NewMockRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRecorder {
	mock := &MockRecorder{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import mock "github.com/stretchr/testify/mock"

type MockFirer struct {
	mock.Mock
}

func (_m *MockFirer) Fire() {
	_m.Called()
}

func NewMockFirer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFirer {
	mock := &MockFirer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	rendezvous "github.com/websync/websync/internal/rendezvous"
)

type mockArriver struct {
	mock.Mock
}

func (_m *mockArriver) Arrive(ctx context.Context, p rendezvous.Participant) (rendezvous.Result, error) {
	ret := _m.Called(ctx, p)

	var r0 rendezvous.Result
	if rf, ok := ret.Get(0).(func(context.Context, rendezvous.Participant) rendezvous.Result); ok {
		r0 = rf(ctx, p)
	} else {
		r0 = ret.Get(0).(rendezvous.Result)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, rendezvous.Participant) error); ok {
		r1 = rf(ctx, p)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func newMockArriver(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockArriver {
	mock := &mockArriver{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

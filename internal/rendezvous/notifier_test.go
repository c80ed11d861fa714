// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOne_NoWaiters(t *testing.T) {
	n := NewNotifier()
	assert.False(t, n.NotifyOne())
	assert.Equal(t, 0, n.waiting())
}

func TestNotifyOne_KeepsNoPermit(t *testing.T) {
	n := NewNotifier()
	n.NotifyOne()

	w := n.Enroll()
	start := time.Now()
	assert.False(t, w.Wait(20*time.Millisecond))
	assert.GreaterOrEqual(t, int64(time.Since(start)), int64(20*time.Millisecond))
	assert.Equal(t, 0, n.waiting())
}

func TestNotifyOne_WakesEnrolledWaiter(t *testing.T) {
	n := NewNotifier()
	w := n.Enroll()
	require.True(t, n.NotifyOne())

	assert.True(t, w.Wait(time.Second))
	assert.Equal(t, 0, n.waiting())
}

func TestNotifyOne_WakesAtMostOne(t *testing.T) {
	n := NewNotifier()
	const waiters = 3

	var woken int32
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		w := n.Enroll()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if w.Wait(100 * time.Millisecond) {
				atomic.AddInt32(&woken, 1)
			}
		}()
	}

	require.True(t, n.NotifyOne())
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&woken))
	assert.Equal(t, 0, n.waiting())
}

func TestNotifyOne_FIFO(t *testing.T) {
	n := NewNotifier()
	first := n.Enroll()
	second := n.Enroll()

	require.True(t, n.NotifyOne())
	assert.True(t, first.Wait(time.Second))
	assert.False(t, second.Wait(10*time.Millisecond))
}

func TestWait_TimeoutWithdrawsWaiter(t *testing.T) {
	n := NewNotifier()
	w := n.Enroll()
	assert.Equal(t, 1, n.waiting())

	assert.False(t, w.Wait(10*time.Millisecond))
	assert.Equal(t, 0, n.waiting())

	// later notifications have nobody to wake
	assert.False(t, n.NotifyOne())
}

func TestWait_NotificationClaimedBeforeWithdraw(t *testing.T) {
	n := NewNotifier()
	w := n.Enroll()
	require.True(t, n.NotifyOne())

	// the channel is already closed so this returns immediately, but the
	// withdraw path must agree
	assert.False(t, n.withdraw(w))
	assert.True(t, w.Wait(0))
}

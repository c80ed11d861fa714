// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendezvous

import (
	"container/list"
	"sync"
	"time"
)

// Notifier is a wake-one notification primitive. NotifyOne releases the
// longest enrolled waiter only; it never broadcasts and it keeps no permit
// when nobody is waiting.
type Notifier struct {
	mu      sync.Mutex
	waiters *list.List
}

// Waiter is a single enrollment on a Notifier. It is released at most once,
// either by NotifyOne or by its own timeout.
type Waiter struct {
	notifier *Notifier
	elem     *list.Element
	ch       chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{waiters: list.New()}
}

// Enroll queues a new waiter. Enrolling before the caller gives up any lock
// guarding the condition guarantees a later NotifyOne can reach it.
func (n *Notifier) Enroll() *Waiter {
	n.mu.Lock()
	defer n.mu.Unlock()

	w := &Waiter{notifier: n, ch: make(chan struct{})}
	w.elem = n.waiters.PushBack(w)
	return w
}

// NotifyOne wakes the front waiter, if any. Returns whether a waiter was woken.
func (n *Notifier) NotifyOne() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	front := n.waiters.Front()
	if front == nil {
		return false
	}
	w := n.waiters.Remove(front).(*Waiter)
	w.elem = nil
	close(w.ch)
	return true
}

// waiting returns the number of enrolled waiters.
func (n *Notifier) waiting() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.waiters.Len()
}

// withdraw removes w from the queue. It returns false when a notification
// already claimed w.
func (n *Notifier) withdraw(w *Waiter) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if w.elem == nil {
		return false
	}
	n.waiters.Remove(w.elem)
	w.elem = nil
	return true
}

// Wait blocks until the waiter is notified or timeout elapses and reports
// whether it was notified. A notification racing with the timeout counts as
// received, so it is never silently consumed.
func (w *Waiter) Wait(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-w.ch:
		return true
	case <-timer.C:
	}

	return !w.notifier.withdraw(w)
}

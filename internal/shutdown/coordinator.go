// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Coordinator owns the single-use termination signal. Fire may be called
// from any number of goroutines; the signal is consumed exactly once and
// every later call is a no-op.
type Coordinator struct {
	fireOnce sync.Once
	fired    atomic.Bool
	doneCh   chan struct{}
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		doneCh: make(chan struct{}),
	}
}

// Fire consumes the signal if it is still present and delivers the
// termination notice to whoever watches Done.
func (c *Coordinator) Fire() {
	c.fireOnce.Do(func() {
		c.fired.Store(true)
		log.Debug("Termination signal fired")
		close(c.doneCh)
	})
}

// Done is closed once the signal has fired.
func (c *Coordinator) Done() <-chan struct{} {
	return c.doneCh
}

// Fired reports whether the signal has been consumed.
func (c *Coordinator) Fired() bool {
	return c.fired.Load()
}

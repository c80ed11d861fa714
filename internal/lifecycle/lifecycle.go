// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/websync/websync/internal/rendezvous"
)

var (
	errTerminated    = errors.New("terminated by rendezvous")
	errServerStopped = errors.New("server stopped")
)

// Server is the serving loop raced against the termination signal.
type Server interface {
	Serve(ctx context.Context) error
}

// Signal delivers the single termination notice.
type Signal interface {
	Done() <-chan struct{}
}

// ExitFunc terminates the process. os.Exit in production.
type ExitFunc func(code int)

// Lifecycle is the only component allowed to terminate the process.
type Lifecycle struct {
	server Server
	signal Signal
	exit   ExitFunc
}

func New(server Server, signal Signal, exit ExitFunc) *Lifecycle {
	return &Lifecycle{
		server: server,
		signal: signal,
		exit:   exit,
	}
}

// Run serves until the termination signal fires, the server fails or ctx is
// canceled. On the termination signal the server is closed and the exit
// function is called with 0. A serving loop that returns nil ends Run too.
// Returns nil unless the server failed.
func (l *Lifecycle) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := l.server.Serve(gctx); err != nil {
			return err
		}
		return errServerStopped
	})

	g.Go(func() error {
		select {
		case <-l.signal.Done():
			log.WithField("phase", rendezvous.Rendezvoused).Info("Both services called. Shutting down.")
			return errTerminated
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	err := g.Wait()
	switch {
	case errors.Is(err, errTerminated):
		log.WithField("phase", rendezvous.Terminated).Info("Server closed, exiting")
		l.exit(0)
		return nil
	case errors.Is(err, errServerStopped), errors.Is(err, context.Canceled):
		log.Info("Server stopped")
		return nil
	default:
		return err
	}
}

// WithShutdownSignals returns a ctx canceled on the first SIGTERM or SIGINT
// received on sigCh.
func WithShutdownSignals(ctx context.Context, sigCh chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.WithField("signal", sig).Info("SignalHandler received")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

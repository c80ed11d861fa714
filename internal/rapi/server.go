// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/netip"
	"time"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = time.Second

// Server serves the trigger points.
type Server struct {
	addr     netip.AddrPort
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new Server
//
// Unlike net/http server's ListenAndServe, we separate Listen()
// and Serve(), so the bound address is known before serving starts.
//
// When port is 0, OS will dynamically allocate the listening port.
func NewServer(addr netip.AddrPort, handler http.Handler) *Server {
	return &Server{
		addr:   addr,
		server: &http.Server{Handler: handler, ReadHeaderTimeout: 15 * time.Second},
	}
}

// Listen on addr
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr.String())
	if err != nil {
		return err
	}

	s.listener = ln
	if s.addr.Port() == 0 {
		s.addr = netip.MustParseAddrPort(ln.Addr().String())
		log.WithField("port", s.addr.Port()).Info("Listening port was dynamically allocated")
	}

	log.Infof("Server starting on http://%s", s.addr)
	return nil
}

func (s *Server) IsListening() bool {
	return s.listener != nil
}

// Serve requests and shut down on cancelation signals, letting in-flight
// responses finish for up to shutdownTimeout. Returns ctx.Err() when canceled
// and nil when the server was closed.
func (s *Server) Serve(ctx context.Context) error {
	if !s.IsListening() {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	defer s.Close()

	select {
	case err := <-s.serveAsync():
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		if err := s.Shutdown(); err != nil {
			log.WithError(err).Warn("Could not gracefully shutdown server")
		}
		return ctx.Err()
	}
}

func (s *Server) serveAsync() chan error {
	errors := make(chan error, 1)
	go func() {
		errors <- s.server.Serve(s.listener)
	}()

	return errors
}

// Addr is the bound address once Listen succeeded.
func (s *Server) Addr() netip.AddrPort {
	return s.addr
}

// URL is full server url for specified endpoint
func (s *Server) URL(endpoint string) string {
	return "http://" + s.addr.String() + endpoint
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if err == nil {
		log.Info("Server closed")
	}
	return err
}

// Shutdown gracefully shuts down server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

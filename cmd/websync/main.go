// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/websync/websync/internal/config"
	"github.com/websync/websync/internal/lifecycle"
	"github.com/websync/websync/internal/logging"
	"github.com/websync/websync/internal/metrics"
	"github.com/websync/websync/internal/rapi"
	"github.com/websync/websync/internal/rendezvous"
	"github.com/websync/websync/internal/shutdown"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logging.Configure(config.DefaultLogLevel, os.Stderr)
		log.WithError(err).Fatal("Invalid configuration")
	}
	logging.Configure(cfg.LogLevel, os.Stderr)

	ctx, cancel := lifecycle.WithShutdownSignals(context.Background(), make(chan os.Signal, 1))
	defer cancel()

	if err := run(ctx, cfg, os.Exit); err != nil {
		log.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, exit lifecycle.ExitFunc) error {
	state := rendezvous.NewState()
	coord := shutdown.NewCoordinator()

	routerCfg := rapi.RouterConfig{
		State:  state,
		Signal: coord,
	}

	var opts []rendezvous.ArriverOption
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder := metrics.New(reg, &metricsSource{state: state, signal: coord}, rendezvous.A.String(), rendezvous.B.String())
		opts = append(opts, rendezvous.WithRecorder(recorder))
		routerCfg.Gatherer = reg
	}
	arriver := rendezvous.NewArriver(state, coord, cfg.WaitTimeout, opts...)
	routerCfg.Arriver = arriver

	server := rapi.NewServer(cfg.Address, rapi.NewRouter(routerCfg))
	if err := server.Listen(); err != nil {
		return err
	}

	log.WithField("waitTimeout", arriver.Timeout()).Info("Waiting for both services to check in")
	return lifecycle.New(server, coord, exit).Run(ctx)
}

type metricsSource struct {
	state  *rendezvous.State
	signal *shutdown.Coordinator
}

func (s *metricsSource) Arrived(participant string) bool {
	p, err := rendezvous.ParseParticipant(participant)
	if err != nil {
		return false
	}
	return s.state.Arrived(p)
}

func (s *metricsSource) Fired() bool {
	return s.signal.Fired()
}

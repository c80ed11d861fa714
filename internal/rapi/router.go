// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/websync/websync/internal/rapi/handler"
	"github.com/websync/websync/internal/rapi/middleware"
	"github.com/websync/websync/internal/rendezvous"
)

// RouterConfig holds the collaborators served by the router.
type RouterConfig struct {
	Arriver handler.Arriver
	State   handler.StateReader
	Signal  handler.SignalReader
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
}

// NewRouter returns a new instance of chi router exposing the two trigger
// points and the operational endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AccessLogMiddleware())
	router.Use(middleware.Recoverer)

	router.Get("/ping", handler.NewPingHandler().ServeHTTP)
	router.Get("/state", handler.NewStateHandler(cfg.State, cfg.Signal).ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(middleware.ArrivalIDMiddleware)
		r.Use(middleware.Recoverer)
		r.Post("/service1", handler.NewArrivalHandler(cfg.Arriver, rendezvous.A).ServeHTTP)
		r.Post("/service2", handler.NewArrivalHandler(cfg.Arriver, rendezvous.B).ServeHTTP)
	})

	if cfg.Gatherer != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	return router
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/websync/websync/internal/rapi/model"
	"github.com/websync/websync/internal/rapi/rendering"
	"github.com/websync/websync/internal/rendezvous"
)

// StateReader exposes the coordination state without changing it.
type StateReader interface {
	Arrived(p rendezvous.Participant) bool
	Phase() rendezvous.Phase
}

// SignalReader reports whether the termination signal has fired.
type SignalReader interface {
	Fired() bool
}

type stateHandler struct {
	state  StateReader
	signal SignalReader
}

func (h *stateHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	rendering.RenderState(writer, request, &model.StateResponse{
		Phase:           h.state.Phase().String(),
		Service1Arrived: h.state.Arrived(rendezvous.A),
		Service2Arrived: h.state.Arrived(rendezvous.B),
		ShutdownFired:   h.signal.Fired(),
	})
}

// NewStateHandler returns a new instance of http handler
// for serving /state.
func NewStateHandler(state StateReader, signal SignalReader) http.Handler {
	return &stateHandler{state: state, signal: signal}
}

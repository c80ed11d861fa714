// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/websync/websync/internal/logging"
	"github.com/websync/websync/internal/rapi/model"
	"github.com/websync/websync/internal/rapi/rendering"
	"github.com/websync/websync/internal/rendezvous"
)

type key int

// ArrivalIDCtxKey is the request context key for the arrival id.
const ArrivalIDCtxKey key = iota

// ArrivalIDHeader carries the id assigned to each trigger call.
const ArrivalIDHeader = "Arrival-Id"

// Arriver runs one participant's check-in.
type Arriver interface {
	Arrive(ctx context.Context, p rendezvous.Participant) (rendezvous.Result, error)
}

type arrivalHandler struct {
	arriver     Arriver
	participant rendezvous.Participant
}

func (h *arrivalHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	arrivalID, _ := ctx.Value(ArrivalIDCtxKey).(string)

	result, err := h.arriver.Arrive(ctx, h.participant)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("Arrival failed")
		if errors.Is(err, rendezvous.ErrUnknownParticipant) {
			rendering.RenderUnknownParticipant(writer, request, err)
			return
		}
		rendering.RenderInternalServerError(writer, request)
		return
	}

	rendering.RenderArrival(writer, request, &model.ArrivalResponse{
		Participant: result.Participant.String(),
		Outcome:     result.Outcome.String(),
		ArrivalID:   arrivalID,
		WaitedMs:    result.Waited.Milliseconds(),
		Message:     result.Message(),
	})
}

// NewArrivalHandler returns a new instance of http handler
// checking participant in on every request.
func NewArrivalHandler(arriver Arriver, participant rendezvous.Participant) http.Handler {
	return &arrivalHandler{
		arriver:     arriver,
		participant: participant,
	}
}

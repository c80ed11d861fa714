// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rendering writes API responses, negotiating between plain text and
// JSON from the Accept header.
package rendering

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/websync/websync/internal/rapi/model"
)

const (
	// ErrorTypeInternalServerError error type for internal server error
	ErrorTypeInternalServerError = "InternalServerError"
	// ErrorTypeUnknownParticipant error type for an unrecognised trigger identity
	ErrorTypeUnknownParticipant = "UnknownParticipant"
)

// RenderArrival renders the arrival result as JSON when the client asks for
// it and as the plain completion message otherwise.
func RenderArrival(w http.ResponseWriter, r *http.Request, resp *model.ArrivalResponse) {
	render.Status(r, http.StatusOK)
	if render.GetAcceptedContentType(r) == render.ContentTypeJSON {
		render.JSON(w, r, resp)
		return
	}
	render.PlainText(w, r, resp.Message)
}

// RenderState renders the state as JSON.
func RenderState(w http.ResponseWriter, r *http.Request, resp *model.StateResponse) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// RenderInternalServerError method for rendering error response
func RenderInternalServerError(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusInternalServerError, &model.ErrorResponse{
		ErrorMessage: "Internal Server Error",
		ErrorType:    ErrorTypeInternalServerError,
	})
}

// RenderUnknownParticipant method for rendering error response
func RenderUnknownParticipant(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusBadRequest, &model.ErrorResponse{
		ErrorMessage: err.Error(),
		ErrorType:    ErrorTypeUnknownParticipant,
	})
}

func renderError(w http.ResponseWriter, r *http.Request, status int, resp *model.ErrorResponse) {
	log.WithField("errorType", resp.ErrorType).Warn(resp.ErrorMessage)
	render.Status(r, status)
	render.JSON(w, r, resp)
}

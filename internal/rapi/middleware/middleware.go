// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/websync/websync/internal/logging"
	"github.com/websync/websync/internal/rapi/handler"
	"github.com/websync/websync/internal/rapi/rendering"
)

// AccessLogMiddleware writes api access log.
func AccessLogMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			log.Debug("API request - ", r.Method, " ", r.URL, ", Headers:", r.Header)
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// ArrivalIDMiddleware assigns a fresh id to every trigger call, returns it in
// the Arrival-Id header and attaches it to the request logger.
func ArrivalIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrivalID := uuid.New().String()
		w.Header().Set(handler.ArrivalIDHeader, arrivalID)

		ctx := context.WithValue(r.Context(), handler.ArrivalIDCtxKey, arrivalID)
		ctx = logging.WithArrivalID(ctx, arrivalID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recoverer turns a panic in a handler into an internal server error for that
// request only. Shared state stays usable for other requests.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logging.FromContext(r.Context()).
					WithField("panic", rvr).
					WithField("stack", string(debug.Stack())).
					Error("Recovered from panic while serving request")
				rendering.RenderInternalServerError(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

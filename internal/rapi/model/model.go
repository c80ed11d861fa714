// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// ArrivalResponse is returned by the trigger points to clients that accept
// JSON.
type ArrivalResponse struct {
	Participant string `json:"participant"`
	Outcome     string `json:"outcome"`
	ArrivalID   string `json:"arrivalId"`
	WaitedMs    int64  `json:"waitedMs"`
	Message     string `json:"message"`
}

// StateResponse reports the current coordination state.
type StateResponse struct {
	Phase           string `json:"phase"`
	Service1Arrived bool   `json:"service1Arrived"`
	Service2Arrived bool   `json:"service2Arrived"`
	ShutdownFired   bool   `json:"shutdownFired"`
}

// ErrorResponse is a standard error response,
// providing information about the error.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/websync/websync/internal/logging"
	"github.com/websync/websync/internal/rapi/handler"
	"github.com/websync/websync/internal/rapi/model"
	"github.com/websync/websync/internal/rendezvous"
	"github.com/websync/websync/internal/shutdown"
)

type testEnv struct {
	state  *rendezvous.State
	signal *shutdown.Coordinator
	router http.Handler
}

func newTestEnv(timeout time.Duration, reg *prometheus.Registry) *testEnv {
	state := rendezvous.NewState()
	signal := shutdown.NewCoordinator()
	cfg := RouterConfig{
		Arriver: rendezvous.NewArriver(state, signal, timeout),
		State:   state,
		Signal:  signal,
	}
	if reg != nil {
		cfg.Gatherer = reg
	}
	return &testEnv{state: state, signal: signal, router: NewRouter(cfg)}
}

func (e *testEnv) post(path string, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Ping(t *testing.T) {
	env := newTestEnv(time.Second, nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRouter_LoneTriggerProceedsWithoutCounterpart(t *testing.T) {
	env := newTestEnv(30*time.Millisecond, nil)

	rec := env.post("/service1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service 1 completed without Service 2", rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(handler.ArrivalIDHeader))
	assert.NoError(t, err)
	assert.False(t, env.signal.Fired())

	// still servable afterwards
	rec = env.post("/service2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Service 2 completed", rec.Body.String())
	assert.True(t, env.signal.Fired())
}

func TestRouter_BothTriggersRendezvous(t *testing.T) {
	env := newTestEnv(5*time.Second, nil)

	var wg sync.WaitGroup
	var recA *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		recA = env.post("/service1", "")
	}()

	require.Eventually(t, func() bool { return env.state.Arrived(rendezvous.A) }, time.Second, time.Millisecond)
	recB := env.post("/service2", "")
	wg.Wait()

	assert.Equal(t, http.StatusOK, recA.Code)
	assert.Equal(t, "Service 1 completed", recA.Body.String())
	assert.Equal(t, http.StatusOK, recB.Code)
	assert.Equal(t, "Service 2 completed", recB.Body.String())

	select {
	case <-env.signal.Done():
	default:
		t.Fatal("termination signal not fired")
	}
}

func TestRouter_JSONResponse(t *testing.T) {
	env := newTestEnv(10*time.Millisecond, nil)

	rec := env.post("/service2", "application/json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp model.ArrivalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "service2", resp.Participant)
	assert.Equal(t, "proceeded_alone", resp.Outcome)
	assert.Equal(t, rec.Header().Get(handler.ArrivalIDHeader), resp.ArrivalID)
	assert.Equal(t, "Service 2 completed without Service 1", resp.Message)
	assert.GreaterOrEqual(t, resp.WaitedMs, int64(10))
}

func TestRouter_State(t *testing.T) {
	env := newTestEnv(10*time.Millisecond, nil)
	env.post("/service1", "")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"phase":"WaitingOne","service1Arrived":true,"service2Arrived":false,"shutdownFired":false}`, rec.Body.String())
}

func TestRouter_TriggersRequirePost(t *testing.T) {
	env := newTestEnv(10*time.Millisecond, nil)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/service1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, env.state.Arrived(rendezvous.A))
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "websync_test_total", Help: "test"}))
	env := newTestEnv(10*time.Millisecond, reg)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "websync_test_total 0")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	env := newTestEnv(10*time.Millisecond, nil)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type panickingArriver struct{}

func (panickingArriver) Arrive(context.Context, rendezvous.Participant) (rendezvous.Result, error) {
	panic("corrupted critical section")
}

func TestRouter_PanicRendersInternalServerError(t *testing.T) {
	state := rendezvous.NewState()
	signal := shutdown.NewCoordinator()
	router := NewRouter(RouterConfig{Arriver: panickingArriver{}, State: state, Signal: signal})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/service1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errorMessage":"Internal Server Error","errorType":"InternalServerError"}`, strings.TrimSpace(string(body)))

	// other endpoints keep working
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PanicLogCarriesArrivalID(t *testing.T) {
	hooks := log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	defer log.StandardLogger().ReplaceHooks(hooks)
	hook := test.NewLocal(log.StandardLogger())

	router := NewRouter(RouterConfig{Arriver: panickingArriver{}, State: rendezvous.NewState(), Signal: shutdown.NewCoordinator()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/service2", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var panicEntry *log.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.ErrorLevel {
			panicEntry = entry
		}
	}
	require.NotNil(t, panicEntry)
	assert.Equal(t, rec.Header().Get(handler.ArrivalIDHeader), panicEntry.Data[logging.ArrivalIDField])
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "websync"

// Collectors records arrival traffic. It satisfies rendezvous.Recorder.
type Collectors struct {
	arrivals     *prometheus.CounterVec
	outcomes     *prometheus.CounterVec
	waitDuration *prometheus.HistogramVec
}

// Source exposes current coordination state for gauge functions.
type Source interface {
	Arrived(participant string) bool
	Fired() bool
}

// New registers the collectors with reg. participants lists the label
// values for the per-slot arrival gauges.
func New(reg prometheus.Registerer, src Source, participants ...string) *Collectors {
	factory := promauto.With(reg)

	for _, p := range participants {
		p := p
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "participant_arrived",
			Help:        "1 once the participant has checked in",
			ConstLabels: prometheus.Labels{"participant": p},
		}, func() float64 {
			return boolToFloat(src.Arrived(p))
		})
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "shutdown_signal_fired",
		Help:      "1 once the termination signal has been consumed",
	}, func() float64 {
		return boolToFloat(src.Fired())
	})

	return &Collectors{
		arrivals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arrivals_total",
			Help:      "Total number of check-ins per participant",
		}, []string{"participant"}),

		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arrival_outcomes_total",
			Help:      "Completed check-ins by outcome",
		}, []string{"participant", "outcome"}),

		waitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wait_duration_seconds",
			Help:      "Time spent waiting for the counterpart",
			Buckets:   []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 15},
		}, []string{"participant"}),
	}
}

func (c *Collectors) Arrival(participant string) {
	c.arrivals.WithLabelValues(participant).Inc()
}

func (c *Collectors) Outcome(participant, outcome string, waited time.Duration) {
	c.outcomes.WithLabelValues(participant, outcome).Inc()
	c.waitDuration.WithLabelValues(participant).Observe(waited.Seconds())
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Package telemetry turns lifecycle hooks into logs and Prometheus metrics.
package telemetry

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	searches      *prometheus.CounterVec
	searchSeconds *prometheus.HistogramVec
	nodesVisited  *prometheus.HistogramVec
	playback      *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathrace_searches_total",
				Help: "Total number of algorithm runs by outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		searchSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathrace_search_duration_seconds",
				Help:    "Duration of the timed search loop",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"algorithm"},
		),
		nodesVisited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathrace_nodes_visited",
				Help:    "Nodes expanded per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"algorithm"},
		),
		playback: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathrace_playback_events_total",
				Help: "Playback ticks and status changes",
			},
			[]string{"type"},
		),
	}
	m.registry.MustRegister(m.searches, m.searchSeconds, m.nodesVisited, m.playback)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records every search and playback event, logging it as well when
// logger is not nil.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearchStart: func(ctx context.Context, e *domain.SearchEvent) {
			if logger != nil {
				logger.DebugContext(ctx, "search_start", "algorithm", e.Algorithm)
			}
		},
		OnSearchFinish: func(ctx context.Context, e *domain.SearchEvent) {
			outcome := "found"
			switch {
			case e.Err != nil:
				outcome = "error"
			case e.Metrics != nil && !e.Metrics.PathFound:
				outcome = "no_path"
			}
			m.searches.WithLabelValues(e.Algorithm, outcome).Inc()
			m.searchSeconds.WithLabelValues(e.Algorithm).Observe(e.Duration.Seconds())
			if e.Metrics != nil {
				m.nodesVisited.WithLabelValues(e.Algorithm).Observe(float64(e.Metrics.NodesVisited))
			}

			if logger == nil {
				return
			}
			if e.Err != nil {
				logger.WarnContext(ctx, "search_finish", "algorithm", e.Algorithm, "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "search_finish",
				"algorithm", e.Algorithm,
				"outcome", outcome,
				"duration", e.Duration,
			)
		},
		OnPlayback: func(ctx context.Context, e *domain.PlaybackEvent) {
			m.playback.WithLabelValues(string(e.Type)).Inc()
			if logger != nil && e.Type == domain.EventPlaybackState {
				logger.DebugContext(ctx, "playback_state", "status", e.Status, "step", e.Step, "speed", e.Speed)
			}
		},
	}
}

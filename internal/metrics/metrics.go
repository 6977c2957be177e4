package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vlossom_bookings_created_total",
		Help: "Bookings created.",
	})
	BookingsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vlossom_bookings_cancelled_total",
		Help: "Bookings cancelled, by refund tier percent.",
	}, []string{"refund_percent"})
	RefundCents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vlossom_refund_cents_total",
		Help: "Total cents refunded to customers on cancellation.",
	})
	RentalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vlossom_rental_requests_total",
		Help: "Chair rental requests, by initial decision.",
	}, []string{"decision"})
	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vlossom_live_connections",
		Help: "Open SSE booking streams.",
	})
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vlossom_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

type HealthFunc func(ctx context.Context) error

// StartServer runs a small HTTP server exposing /metrics and /healthz,
// meant to be started from main alongside the API server.
func StartServer(port int, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}

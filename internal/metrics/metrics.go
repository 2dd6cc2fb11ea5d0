package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "bookings_created_total",
		Help:      "Bookings accepted, by actor.",
	}, []string{"actor"})

	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "bookings_rejected_total",
		Help:      "Bookings rejected by the rule chain, by actor and rule code.",
	}, []string{"actor", "code"})

	BookingsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "bookings_cancelled_total",
		Help:      "Cancellations, by actor.",
	}, []string{"actor"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "barbershop",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barbershop",
		Name:      "rate_limited_total",
		Help:      "Requests refused by the per-IP limiter.",
	}, []string{"group"})
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

package apidocs

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// RequestIDHeader carries the request ID set by every apidocs route.
const RequestIDHeader = "X-Request-ID"

var durationBuckets = []float64{
	0.0005,
	0.001, // 1ms
	0.005,
	0.01, // 10ms
	0.05,
	0.1, // 100ms
	0.5,
	1.0, // 1s
	5.0,
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	examples *prometheus.CounterVec
	notation *prometheus.CounterVec
}

// newMetrics creates the collectors on reg. A nil reg leaves them
// unregistered. Collectors already registered on reg by an earlier handler
// are reused, so several base paths can share one registerer.
func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	return &metrics{
		requests: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "apidocs",
			Name:      "requests_total",
			Help:      "HTTP requests served, partitioned by route, method and status code.",
		}, []string{"route", "method", "status"})),
		duration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "apidocs",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   durationBuckets,
		}, []string{"route"})),
		examples: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "apidocs",
			Name:      "examples_total",
			Help:      "Example records returned, partitioned by format.",
		}, []string{"format"})),
		notation: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "apidocs",
			Name:      "notation_cache_total",
			Help:      "Notation tree lookups, partitioned by cache result.",
		}, []string{"result"})),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}

	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// instrument wraps a route handler. It propagates or assigns a request ID,
// attaches a request-scoped logger, recovers panics into 500 responses and
// records request metrics.
func (h *handler) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		log := clog.FromContext(r.Context()).With("route", route, "request_id", id)
		r = r.WithContext(clog.WithLogger(r.Context(), log))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		defer func() {
			if rv := recover(); rv != nil {
				log.Errorf("panic serving %s: %v", r.URL.Path, rv)
				if rec.status == 0 {
					http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}

			status := strconv.Itoa(rec.status)
			h.metrics.requests.WithLabelValues(route, r.Method, status).Inc()
			h.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			log.Debugf("%s %s -> %s", r.Method, r.URL.Path, status)
		}()

		next(rec, r)
	})
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	anglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "windtunnel_angles_total",
			Help: "Angles of attack evaluated, by outcome.",
		},
		[]string{"status"},
	)

	runDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "windtunnel_run_duration_seconds",
			Help:    "Duration of one coefficient run in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	wsClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "windtunnel_ws_clients",
			Help: "Connected websocket clients.",
		},
	)

	wsMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "windtunnel_ws_messages_total",
			Help: "Websocket requests handled, by message type and outcome.",
		},
		[]string{"type", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "windtunnel_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "code"},
	)
)

func init() {
	prometheus.MustRegister(anglesTotal)
	prometheus.MustRegister(runDurationSeconds)
	prometheus.MustRegister(wsClients)
	prometheus.MustRegister(wsMessagesTotal)
	prometheus.MustRegister(httpRequestsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRun counts the angles of one run and observes its duration.
func RecordRun(kind string, duration time.Duration, ok, failed int) {
	anglesTotal.WithLabelValues("ok").Add(float64(ok))
	anglesTotal.WithLabelValues("failed").Add(float64(failed))
	runDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

func IncClients() { wsClients.Inc() }
func DecClients() { wsClients.Dec() }

func RecordMessage(msgType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	wsMessagesTotal.WithLabelValues(msgType, status).Inc()
}

func normalizeRoute(path string) string {
	switch path {
	case "/", "/ws", "/metrics":
		return path
	}
	return "other"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests per route. The websocket route is counted
// before the upgrade hijacks the connection.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := normalizeRoute(r.URL.Path)
		if route == "/ws" {
			httpRequestsTotal.WithLabelValues(route, "101").Inc()
			next.ServeHTTP(w, r)
			return
		}
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		httpRequestsTotal.WithLabelValues(route, strconv.Itoa(rw.statusCode)).Inc()
	})
}

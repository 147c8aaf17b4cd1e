package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/ws", "/ws"},
		{"/metrics", "/metrics"},
		{"/wp-admin", "other"},
		{"/favicon.ico", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizeRoute(tt.path); got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRecordRun(t *testing.T) {
	ok := testutil.ToFloat64(anglesTotal.WithLabelValues("ok"))
	failed := testutil.ToFloat64(anglesTotal.WithLabelValues("failed"))

	RecordRun("coeffs", 20*time.Millisecond, 3, 1)

	if got := testutil.ToFloat64(anglesTotal.WithLabelValues("ok")) - ok; got != 3 {
		t.Errorf("ok angles += %f, want 3", got)
	}
	if got := testutil.ToFloat64(anglesTotal.WithLabelValues("failed")) - failed; got != 1 {
		t.Errorf("failed angles += %f, want 1", got)
	}
}

func TestRecordMessage(t *testing.T) {
	before := testutil.ToFloat64(wsMessagesTotal.WithLabelValues("drag", "error"))
	RecordMessage("drag", errors.New("boom"))
	if got := testutil.ToFloat64(wsMessagesTotal.WithLabelValues("drag", "error")) - before; got != 1 {
		t.Errorf("drag errors += %f, want 1", got)
	}
}

func TestMiddleware(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "404"))
	h := Middleware(http.NotFoundHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "404")) - before; got != 1 {
		t.Errorf("404 count += %f, want 1", got)
	}
}

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_InflightReturnsToZero(t *testing.T) {
	var seen float64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// read the gauge while the request is in flight
		seen = testutil.ToFloat64(httpInflight.WithLabelValues("/inflight-probe"))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/inflight-probe", nil)
	MetricsMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

	if seen != 1 {
		t.Fatalf("expected inflight=1 during request, got %v", seen)
	}
	after := testutil.ToFloat64(httpInflight.WithLabelValues("/inflight-probe"))
	if after != 0 {
		t.Fatalf("expected inflight=0 after request, got %v", after)
	}
}

func TestMetricsMiddleware_CountsByStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	baseline := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/status-probe", "GET", "404"))
	req := httptest.NewRequest(http.MethodGet, "/status-probe", nil)
	MetricsMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/status-probe", "GET", "404"))
	if got != baseline+1 {
		t.Fatalf("expected counter %v, got %v", baseline+1, got)
	}
}

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 7: "7", 204: "204", 404: "404", 1234: "1234"}
	for in, want := range cases {
		if got := itoa(in); got != want {
			t.Fatalf("itoa(%d) = %q, want %q", in, got, want)
		}
	}
}

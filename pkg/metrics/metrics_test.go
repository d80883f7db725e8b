package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounter(t *testing.T) {
	r := New()
	c := r.Counter("requests_total", "Total requests.")
	c.Inc()
	c.Add(4)
	if c.Value() != 5 {
		t.Fatalf("expected 5, got %d", c.Value())
	}
	// Same name returns the same counter.
	if r.Counter("requests_total", "") != c {
		t.Fatal("expected identical counter instance")
	}
}

func TestWithLabels(t *testing.T) {
	got := WithLabels("http_requests_total", "method", "GET", "status", "200")
	want := `http_requests_total{method="GET",status="200"}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	// Odd pairs fall back to the bare name.
	if WithLabels("foo", "only_key") != "foo" {
		t.Fatal("expected bare name on odd label count")
	}
}

func TestRenderCounterWithLabels(t *testing.T) {
	r := New()
	r.Counter(WithLabels("http_requests_total", "status", "200"), "Total requests.").Add(3)
	r.Counter(WithLabels("http_requests_total", "status", "404"), "").Inc()

	out := r.Render()
	if !strings.Contains(out, "# TYPE http_requests_total counter") {
		t.Fatalf("missing TYPE line:\n%s", out)
	}
	if !strings.Contains(out, `http_requests_total{status="200"} 3`) {
		t.Fatalf("missing labeled sample:\n%s", out)
	}
	if !strings.Contains(out, `http_requests_total{status="404"} 1`) {
		t.Fatalf("missing second labeled sample:\n%s", out)
	}
}

func TestHistogramRender(t *testing.T) {
	r := New()
	h := r.Histogram("request_duration_seconds", "Request duration.", []float64{0.1, 1})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(5) // above all buckets, only counted in +Inf

	out := r.Render()
	if !strings.Contains(out, `request_duration_seconds_bucket{le="0.1"} 1`) {
		t.Fatalf("missing first bucket:\n%s", out)
	}
	if !strings.Contains(out, `request_duration_seconds_bucket{le="1"} 2`) {
		t.Fatalf("expected cumulative bucket count:\n%s", out)
	}
	if !strings.Contains(out, `request_duration_seconds_bucket{le="+Inf"} 3`) {
		t.Fatalf("missing +Inf bucket:\n%s", out)
	}
	if !strings.Contains(out, "request_duration_seconds_count 3") {
		t.Fatalf("missing count:\n%s", out)
	}
}

func TestHandler(t *testing.T) {
	r := New()
	r.Counter("up", "").Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "up 1") {
		t.Fatalf("missing metric:\n%s", rec.Body.String())
	}
}

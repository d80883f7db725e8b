package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mossaab-byte/northwind-graph-api/engine/events"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
	"github.com/mossaab-byte/northwind-graph-api/pkg/metrics"
)

// fakeStore backs the real repositories in handler tests. Write hands itself
// to the work function so transactional steps share the result queue.
type fakeStore struct {
	cyphers []string
	params  []map[string]any
	results [][]store.Record
	err     error

	deleteOK  bool
	deleteErr error
}

func (f *fakeStore) Run(_ context.Context, cypher string, params map[string]any) ([]store.Record, error) {
	f.cyphers = append(f.cyphers, cypher)
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	recs := f.results[0]
	f.results = f.results[1:]
	return recs, nil
}

func (f *fakeStore) Write(_ context.Context, work func(tx store.Tx) error) error {
	return work(f)
}

func (f *fakeStore) DeleteNode(context.Context, string, string, any) (bool, error) {
	return f.deleteOK, f.deleteErr
}

type capturePublisher struct {
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, ev events.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func newTestServer(db *fakeStore, pub events.Publisher) http.Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	return newServer(db, pub, metrics.New(), logger).routes("/api")
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProductCreateAllocatesID(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(78)}},
		{{"id": int64(78), "name": "Widget"}},
	}}
	rec := do(t, newTestServer(db, nil), "POST", "/api/products/", `{"productName":"Widget"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":78`) {
		t.Fatalf("expected allocated id in body: %s", rec.Body.String())
	}
}

func TestProductCreateValidation(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "POST", "/api/products/", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "productName is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestInvalidJSONBody(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "POST", "/api/customers/", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCustomerGetNotFound(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "GET", "/api/customers/NOPE/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Customer not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProductGetNonNumericID(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "GET", "/api/products/abc/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("non-numeric id must behave like a miss, got %d", rec.Code)
	}
}

func TestCustomerDelete(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{deleteOK: true}, nil), "DELETE", "/api/customers/ALFKI/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = do(t, newTestServer(&fakeStore{}, nil), "DELETE", "/api/customers/NOPE/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStoreFailureIsOpaque500(t *testing.T) {
	db := &fakeStore{err: errors.New("connection refused")}
	rec := do(t, newTestServer(db, nil), "GET", "/api/orders/", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatal("internal error detail must not leak")
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListRendersEmptyArray(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "GET", "/api/suppliers/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAnalyticsLimitParam(t *testing.T) {
	db := &fakeStore{}
	do(t, newTestServer(db, nil), "GET", "/api/analytics/top-products/?limit=5", "")
	if db.params[0]["limit"] != 5 {
		t.Fatalf("expected limit 5, got %v", db.params[0]["limit"])
	}

	db = &fakeStore{}
	do(t, newTestServer(db, nil), "GET", "/api/analytics/top-products/", "")
	if db.params[0]["limit"] != 10 {
		t.Fatalf("expected default limit, got %v", db.params[0]["limit"])
	}
}

func TestDashboardEmptyGraph(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "GET", "/api/analytics/dashboard/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("expected empty object, got %s", rec.Body.String())
	}
}

func TestLegacyOrderProductsRoute(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"name": "Chai", "quantity": int64(12)}},
	}}
	rec := do(t, newTestServer(db, nil), "GET", "/api/orders/11/products/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"quantity":12`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestChangeEventsPublished(t *testing.T) {
	pub := &capturePublisher{}
	db := &fakeStore{results: [][]store.Record{
		{{"id": "ALFKI", "name": "Alfreds Futterkiste"}},
	}}
	h := newTestServer(db, pub)

	do(t, h, "POST", "/api/customers/", `{"customerID":"ALFKI","companyName":"Alfreds Futterkiste"}`)
	if len(pub.events) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Entity != "customer" || ev.Action != events.ActionCreated || ev.ID != "ALFKI" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestNoEventOnFailedMutation(t *testing.T) {
	pub := &capturePublisher{}
	h := newTestServer(&fakeStore{}, pub)

	do(t, h, "POST", "/api/customers/", `{}`)
	if len(pub.events) != 0 {
		t.Fatalf("validation failure must not publish, got %d events", len(pub.events))
	}
}

func TestCustomerUpdateNotFound(t *testing.T) {
	rec := do(t, newTestServer(&fakeStore{}, nil), "PUT", "/api/customers/NOPE/", `{"companyName":"X"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

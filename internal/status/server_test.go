package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/gbhost/internal/bus"
	"github.com/danmuck/gbhost/internal/manifest"
	"github.com/danmuck/gbhost/internal/testutil/testlog"
)

func testHostWithConnection(t *testing.T) *bus.Host {
	t.Helper()
	lb := bus.NewLoopback()
	h := bus.NewHost(bus.Config{}, lb, zerolog.Nop())
	lb.Attach(h)

	intf := h.RegisterInterface(0, manifest.Result{
		Module: manifest.Module{Vendor: 0x1234, Product: 0x5678, Version: 2},
		CPorts: []manifest.CPortDecl{{Number: 3}},
	})
	if _, err := h.CreateConnection(intf, 3, bus.ProtocolGPIO); err != nil {
		t.Fatalf("create connection: %v", err)
	}
	return h
}

func TestHealthRoute(t *testing.T) {
	testlog.Start(t)

	srv := New("gbhost-test", ":0", nil)
	srv.AddHost(testHostWithConnection(t))

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status: %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body["status"] != "ok" || body["hosts"] != float64(1) {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestHostRoutes(t *testing.T) {
	testlog.Start(t)

	h := testHostWithConnection(t)
	srv := New("gbhost-test", ":0", nil)
	srv.AddHost(h)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hosts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("hosts status: %d", w.Code)
	}
	var hosts []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &hosts); err != nil {
		t.Fatalf("decode hosts: %v", err)
	}
	if len(hosts) != 1 || hosts[0]["connections"] != float64(1) {
		t.Fatalf("unexpected hosts body: %v", hosts)
	}

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hosts/"+h.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("host detail status: %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hosts/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown host must 404, got %d", w.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	testlog.Start(t)

	srv := New("gbhost-test", ":0", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", w.Code)
	}
}

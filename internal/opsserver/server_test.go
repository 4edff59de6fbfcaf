package opsserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/tjporte/internal/metrics"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code, rec.Body.String()
}

func TestHealthz(t *testing.T) {
	code, body := get(t, NewRouter(Config{}), "/healthz")
	if code != http.StatusOK || body != "ok\n" {
		t.Errorf("healthz = %d %q", code, body)
	}
}

func TestReadyzFollowsSession(t *testing.T) {
	var connected atomic.Bool
	h := NewRouter(Config{Ready: connected.Load})

	if code, _ := get(t, h, "/readyz"); code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before connect, got %d", code)
	}
	connected.Store(true)
	if code, _ := get(t, h, "/readyz"); code != http.StatusOK {
		t.Errorf("expected 200 after connect, got %d", code)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := metrics.New()
	m.IncrementCommand("minhas_permissoes", metrics.ResultOK)

	code, body := get(t, NewRouter(Config{Gatherer: m.Registry}), "/metrics")
	if code != http.StatusOK {
		t.Fatalf("metrics returned %d", code)
	}
	if !strings.Contains(body, `tjporte_commands_total{command="minhas_permissoes",result="ok"} 1`) {
		t.Errorf("metrics body missing command counter:\n%s", body)
	}
}

func TestMetricsRouteAbsentWithoutGatherer(t *testing.T) {
	if code, _ := get(t, NewRouter(Config{}), "/metrics"); code != http.StatusNotFound {
		t.Errorf("expected 404 without gatherer, got %d", code)
	}
}

func TestServeOnShutsDownOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := New(Config{Addr: lis.Addr().String()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeOn(ctx, lis) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + lis.Addr().String() + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok\n" {
		t.Errorf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ServeOn returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

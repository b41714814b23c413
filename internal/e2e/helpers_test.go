package e2e

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"runnerd/internal/config"
	"runnerd/internal/httpapi"
	"runnerd/internal/runtime"
)

// newServer builds a full runtime from cfg and serves it over httptest. The
// returned runtime handle lets tests seed memory, cache and stream state
// behind the HTTP surface.
func newServer(t *testing.T, cfg config.Config) (*httptest.Server, *runtime.Runtime) {
	t.Helper()
	if cfg.SwapDir == "" {
		cfg.SwapDir = t.TempDir()
	}
	rt, err := runtime.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(rt))
	t.Cleanup(func() {
		srv.Close()
		_ = rt.Close()
	})
	return srv, rt
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpDelete(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

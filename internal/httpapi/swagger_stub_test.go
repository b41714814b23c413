//go:build !swagger

package httpapi

import (
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMountSwagger_NoOpWithoutTag(t *testing.T) {
	r := chi.NewRouter()
	MountSwagger(r)
	if n := len(r.Routes()); n != 0 {
		t.Fatalf("expected no routes mounted by the stub, got %d", n)
	}
}

//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "runnerd/docs"
)

// MountSwagger serves the generated OpenAPI docs at /swagger/. Enabled with
// -tags=swagger; regenerate the docs package with
// `swag init -g cmd/runnerd/docs.go -o docs` after changing annotations.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"runnerd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Status() types.StatusResponse
	Ready() bool
	CacheDelete(ctx context.Context, key string) error
	CacheClear(ctx context.Context) error
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	// CORS for browser-based dashboards (opt-in)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)

	r.Get("/status", statusHandler(svc))
	r.Delete("/cache/{key}", cacheDeleteHandler(svc))
	r.Delete("/cache", cacheClearHandler(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Swagger UI when built with -tags=swagger, no-op otherwise
	MountSwagger(r)

	return r
}

// statusHandler reports resource, cache and stream statistics.
//
// @Summary      Runtime status
// @Description  Memory accounting, cache tier counters and stream session statistics.
// @Produce      json
// @Success      200 {object} types.StatusResponse
// @Router       /status [get]
func statusHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	}
}

// cacheDeleteHandler removes one cached entry from every tier.
//
// @Summary      Delete a cache entry
// @Description  Removes the entry with the given key from every tier. Absent keys succeed.
// @Param        key path string true "cache key"
// @Produce      json
// @Success      204 {string} string "no content"
// @Failure      500 {object} types.ErrorResponse
// @Router       /cache/{key} [delete]
func cacheDeleteHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		start := time.Now()
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.CacheDelete(ctx, key); err != nil {
			writeServiceError(w, r, err, "cache delete", start)
			return
		}
		logAdmin(r, "cache delete", start)
		w.WriteHeader(http.StatusNoContent)
	}
}

// cacheClearHandler empties every cache tier.
//
// @Summary      Clear the cache
// @Description  Removes all entries from every tier. Counters keep their cumulative values.
// @Produce      json
// @Success      204 {string} string "no content"
// @Failure      500 {object} types.ErrorResponse
// @Router       /cache [delete]
func cacheClearHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.CacheClear(ctx); err != nil {
			writeServiceError(w, r, err, "cache clear", start)
			return
		}
		logAdmin(r, "cache clear", start)
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeServiceError maps a service error to a JSON error response. Errors
// carrying their own status code keep it; anything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string, start time.Time) {
	// If context was canceled (client disconnect or shutdown), just return.
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return
	}
	status := http.StatusInternalServerError
	if he, ok := err.(HTTPError); ok {
		status = he.StatusCode()
	}
	writeJSONError(w, status, err.Error())
	if zlog != nil {
		z := zlog.Error().Str("op", op).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Err(err).Msg("admin op failed")
	}
}

// logAdmin records a successful administrative operation.
func logAdmin(r *http.Request, op string, start time.Time) {
	if zlog == nil || requestLogLevel(r) < LevelInfo {
		return
	}
	z := zlog.Info().Str("op", op).Str("path", r.URL.Path).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("admin op")
}

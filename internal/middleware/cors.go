package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the browser frontend at origins call the API.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key", traceIDHeader},
		ExposedHeaders: []string{"Location", traceIDHeader, replayedHeader},
		MaxAge:         600,
	})
	return c.Handler
}

// Chain wraps h so the first middleware listed is outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

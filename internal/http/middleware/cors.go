package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the browser front-end on allowedOrigins call the API.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "Retry-After"},
		MaxAge:         600,
	})
	return c.Handler
}

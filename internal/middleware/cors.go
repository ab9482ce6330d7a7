package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"tripbuilder/internal/config"
)

// NewCORS builds the CORS layer from the configured origins. The
// booking dashboard is a browser client on a different origin, so the
// API has to answer preflights for it.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}
	return cors.New(opts).Handler
}

package middleware

import (
	"net/http"
	"slices"

	"movie-review/pkg/utils"

	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// CORS allows credentialed requests from the configured origins only. "*" in
// the list allows every origin. Requests without an Origin header (curl,
// server-to-server) pass through.
func CORS(allowedOrigins []string, logger *zap.Logger) func(http.Handler) http.Handler {
	allowed := func(origin string) bool {
		return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
	}

	handler := cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return allowed(origin)
		},
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials:   true,
		OptionsPassthrough: false,
		MaxAge:             300,
	})

	return func(next http.Handler) http.Handler {
		withCORS := handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !allowed(origin) {
				logger.Warn("Blocked CORS request", zap.String("origin", origin), zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "CORS not allowed for origin: "+origin)
				return
			}

			withCORS.ServeHTTP(w, r)
		})
	}
}

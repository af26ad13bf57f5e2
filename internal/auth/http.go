// ABOUTME: HTTP middleware form of the admin guard for protected routes
// ABOUTME: Rejects with the mapped status and JSON body, or attaches the capability

package auth

import (
	"log/slog"
	"net/http"
)

// RequireAdmin returns middleware that gates a route behind the admin guard.
// On failure it writes the typed error's JSON response and stops. On success
// it attaches the Admin capability to the request context for retrieval with
// AdminFrom/MustAdminFrom.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, aerr := VerifyAdmin(r)
			if aerr != nil {
				// 500s are operator problems worth surfacing; 400s are routine
				// bad credentials and stay at debug to keep flood noise down.
				if aerr.StatusCode() >= http.StatusInternalServerError {
					logger.Error("admin guard failed",
						"kind", aerr.Kind().String(),
						"path", r.URL.Path,
						"error", aerr,
					)
				} else {
					logger.Debug("admin request rejected",
						"kind", aerr.Kind().String(),
						"path", r.URL.Path,
					)
				}
				aerr.WriteResponse(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/starkrivals/starkrivals/internal/api/apierr"
	"github.com/starkrivals/starkrivals/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics surface as JSON internal errors instead of the plain-text default.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/fatetable/internal/api/apierr"
	"github.com/mcoot/fatetable/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "http")))
}

// Recovery creates panic recovery middleware for the API.
// Returns JSON error responses on panic, unless the connection was upgraded.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "http")), apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	if middleware.IsHijacked(w) {
		return
	}
	apierr.WriteError(w, apierr.NewInternalError())
}

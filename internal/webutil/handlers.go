package webutil

import (
	"errors"
	"log/slog"
	"net/http"
)

const msgUnexpected = "unexpected error"

// AppHandler is a handler function that reports failure by returning an
// error instead of writing the error response itself.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to http.HandlerFunc. A returned *HTTPError
// is translated verbatim into a JSON {"message": ...} body with its status
// code; anything else collapses to a generic 500 with no internal detail.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			level := slog.LevelWarn
			if httpErr.Code >= 500 {
				level = slog.LevelError
			}
			slog.Log(r.Context(), level, "request failed",
				"code", httpErr.Code,
				"msg", httpErr.Message,
				"path", r.URL.Path,
				"method", r.Method,
			)
			RespondWithMessage(w, httpErr.Code, httpErr.Message)
			return
		}

		slog.Error("unhandled internal error",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)
		RespondWithMessage(w, http.StatusInternalServerError, msgUnexpected)
	}
}

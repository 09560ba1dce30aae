package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoon-dev/resumehub/internal/common"
	"github.com/jmoon-dev/resumehub/internal/server/auth"
	"github.com/jmoon-dev/resumehub/internal/server/models"
	"github.com/jmoon-dev/resumehub/internal/webutil"
)

type ctxKey string

const (
	userCtxKey ctxKey = "user"

	authCookieName  = "authorization"
	bearerTokenType = "Bearer"

	requestIDHeader = "X-Request-Id"
)

// UserFromContext returns the user resolved by the auth gate, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*models.User)
	return user, ok
}

// requestID tags every request with a fresh id, echoes it in the response
// header, and logs the request under it.
func (s *HTTPServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		s.logger.With("request_id", id).Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// requireAuth gates protected routes on the bearer credential stored in the
// authorization cookie. The token is re-verified and the user re-fetched on
// every request; nothing is cached across requests, so an externally deleted
// account loses access immediately.
//
// Failure responses, in check order:
//
//	cookie absent            → 400 "login required"
//	scheme is not Bearer     → 400 "token type is not Bearer"
//	token body missing       → 400 "invalid credential"
//	token expired            → 401 "token expired"
//	signature invalid        → 400 "token has been tampered with"
//	userId claim missing     → 400 "invalid credential"
//	user no longer exists    → 400 "token user does not exist"
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			webutil.RespondWithMessage(w, http.StatusBadRequest, "login required")
			return
		}

		tokenType, token, _ := strings.Cut(cookie.Value, " ")
		if tokenType != bearerTokenType {
			webutil.RespondWithMessage(w, http.StatusBadRequest, "token type is not Bearer")
			return
		}
		if token == "" {
			webutil.RespondWithMessage(w, http.StatusBadRequest, "invalid credential")
			return
		}

		userID, err := auth.UserIDFromToken(token, s.jwtSecret)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				webutil.RespondWithMessage(w, http.StatusUnauthorized, "token expired")
			case errors.Is(err, common.ErrNoUserID):
				webutil.RespondWithMessage(w, http.StatusBadRequest, "invalid credential")
			default:
				webutil.RespondWithMessage(w, http.StatusBadRequest, "token has been tampered with")
			}
			return
		}

		user, err := s.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				webutil.RespondWithMessage(w, http.StatusBadRequest, "token user does not exist")
				return
			}
			s.logger.Error(r.Context(), "auth user lookup failed", "error", err)
			webutil.RespondWithMessage(w, http.StatusInternalServerError, "unexpected error")
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

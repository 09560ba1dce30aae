package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/jmoon-dev/resumehub/internal/server/models"
	"github.com/jmoon-dev/resumehub/internal/server/services"
	"github.com/jmoon-dev/resumehub/internal/webutil"
)

const minPasswordLength = 6

type signUpRequest struct {
	Email     string       `json:"email"`
	ClientID  string       `json:"clientId"`
	Password  string       `json:"password"`
	Password2 string       `json:"password2"`
	Name      string       `json:"name"`
	Grade     models.Grade `json:"grade"`
}

type signInRequest struct {
	Email    string `json:"email"`
	ClientID string `json:"clientId"`
	Password string `json:"password"`
}

// profileView is the account projection returned to the authenticated user.
// The password hash is never exposed.
type profileView struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// handleSignUp registers a new account. Validation short-circuits on the
// first failing check; the order and status codes are part of the wire
// contract (note the 401 for mismatched passwords and the 406 for a short
// one). The client-id path skips the password rules entirely.
func (s *HTTPServer) handleSignUp(w http.ResponseWriter, r *http.Request) error {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return webutil.ErrBadRequest("invalid request body")
	}

	if req.Grade != "" && !models.ValidGrade(req.Grade) {
		return webutil.ErrBadRequest("invalid grade")
	}

	if req.ClientID == "" {
		if req.Email == "" {
			return webutil.ErrBadRequest("email is required")
		}
		if req.Password == "" {
			return webutil.ErrBadRequest("password is required")
		}
		if req.Password2 == "" {
			return webutil.ErrBadRequest("password confirmation is required")
		}
		if req.Password != req.Password2 {
			return webutil.ErrUnauthorized("passwords do not match")
		}
		if len(req.Password) < minPasswordLength {
			return webutil.ErrNotAcceptable("password must be at least 6 characters")
		}
	}

	if req.Name == "" {
		return webutil.ErrBadRequest("name is required")
	}

	err := s.users.SignUp(r.Context(), services.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		ClientID: req.ClientID,
		Name:     req.Name,
		Grade:    req.Grade,
	})
	if err != nil {
		return err
	}

	webutil.RespondWithMessage(w, http.StatusCreated, "sign-up completed")
	return nil
}

// handleSignIn authenticates and sets the session cookie. The cookie value
// keeps the literal "Bearer <token>" shape the auth gate expects.
func (s *HTTPServer) handleSignIn(w http.ResponseWriter, r *http.Request) error {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return webutil.ErrBadRequest("invalid request body")
	}

	if req.ClientID == "" {
		if req.Email == "" {
			return webutil.ErrBadRequest("email is required")
		}
		if req.Password == "" {
			return webutil.ErrBadRequest("password is required")
		}
	}

	token, err := s.users.SignIn(r.Context(), services.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:  authCookieName,
		Value: bearerTokenType + " " + token,
		Path:  "/",
	})

	webutil.RespondWithMessage(w, http.StatusOK, "successfully signed in")
	return nil
}

// handleGetUser returns the authenticated user's own profile.
func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) error {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("login required")
	}

	webutil.RespondWithData(w, http.StatusOK, profileView{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	return nil
}

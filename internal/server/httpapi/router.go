package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmoon-dev/resumehub/internal/webutil"
)

const paramResumeID = "resumeId"

func (s *HTTPServer) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/sign-up", webutil.MakeHandler(s.handleSignUp))
		r.Post("/sign-in", webutil.MakeHandler(s.handleSignIn))
		r.Get("/resumes", webutil.MakeHandler(s.handleListResumes))
		r.Get("/resumes/{"+paramResumeID+"}", webutil.MakeHandler(s.handleGetResume))

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/users", webutil.MakeHandler(s.handleGetUser))
			r.Post("/resumes", webutil.MakeHandler(s.handleCreateResume))
			r.Patch("/resumes/{"+paramResumeID+"}", webutil.MakeHandler(s.handlePatchResume))
			r.Delete("/resumes/{"+paramResumeID+"}", webutil.MakeHandler(s.handleDeleteResume))
		})
	})

	return r
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

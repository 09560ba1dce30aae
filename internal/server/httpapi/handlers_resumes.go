package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoon-dev/resumehub/internal/server/models"
	"github.com/jmoon-dev/resumehub/internal/webutil"
)

type createResumeRequest struct {
	Title        string `json:"title"`
	Introduction string `json:"introduction"`
}

type patchResumeRequest struct {
	Title        *string `json:"title"`
	Introduction *string `json:"introduction"`
	Status       *string `json:"status"`
}

// resumeView is the fixed projection exposed on every read path. The owner
// id stays internal; the author is identified by the denormalized name only.
type resumeView struct {
	ResumeID     int64     `json:"resumeId"`
	Title        string    `json:"title"`
	Introduction string    `json:"introduction"`
	Name         string    `json:"name"`
	Status       *string   `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func viewOf(r *models.Resume) resumeView {
	return resumeView{
		ResumeID:     r.ID,
		Title:        r.Title,
		Introduction: r.Introduction,
		Name:         r.AuthorName,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}

func resumeIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramResumeID), 10, 64)
	if err != nil {
		return 0, webutil.ErrBadRequest("invalid resumeId")
	}
	return id, nil
}

func (s *HTTPServer) handleListResumes(w http.ResponseWriter, r *http.Request) error {
	orderKey := r.URL.Query().Get("orderKey")
	orderValue := r.URL.Query().Get("orderValue")

	resumes, err := s.resumes.List(r.Context(), orderKey, orderValue)
	if err != nil {
		return err
	}

	views := make([]resumeView, 0, len(resumes))
	for _, resume := range resumes {
		views = append(views, viewOf(resume))
	}

	webutil.RespondWithData(w, http.StatusOK, views)
	return nil
}

// handleGetResume answers a single-record read. The 201 status on this read
// is a preserved wire inconsistency.
func (s *HTTPServer) handleGetResume(w http.ResponseWriter, r *http.Request) error {
	id, err := resumeIDParam(r)
	if err != nil {
		return err
	}

	resume, err := s.resumes.Get(r.Context(), id)
	if err != nil {
		return err
	}

	webutil.RespondWithData(w, http.StatusCreated, viewOf(resume))
	return nil
}

func (s *HTTPServer) handleCreateResume(w http.ResponseWriter, r *http.Request) error {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("login required")
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return webutil.ErrBadRequest("invalid request body")
	}

	resume, err := s.resumes.Create(r.Context(), actor, req.Title, req.Introduction)
	if err != nil {
		return err
	}

	webutil.RespondWithData(w, http.StatusCreated, viewOf(resume))
	return nil
}

func (s *HTTPServer) handlePatchResume(w http.ResponseWriter, r *http.Request) error {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("login required")
	}

	id, err := resumeIDParam(r)
	if err != nil {
		return err
	}

	var req patchResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return webutil.ErrBadRequest("invalid request body")
	}

	patch := &models.ResumePatch{
		Title:        req.Title,
		Introduction: req.Introduction,
		Status:       req.Status,
	}

	if err := s.resumes.Patch(r.Context(), actor, id, patch); err != nil {
		return err
	}

	webutil.RespondWithMessage(w, http.StatusOK, "resume updated")
	return nil
}

func (s *HTTPServer) handleDeleteResume(w http.ResponseWriter, r *http.Request) error {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("login required")
	}

	id, err := resumeIDParam(r)
	if err != nil {
		return err
	}

	if err := s.resumes.Delete(r.Context(), actor, id); err != nil {
		return err
	}

	webutil.RespondWithMessage(w, http.StatusOK, "resume deleted")
	return nil
}

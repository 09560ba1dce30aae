package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoon-dev/resumehub/internal/common"
	"github.com/jmoon-dev/resumehub/internal/server/auth"
	"github.com/jmoon-dev/resumehub/internal/server/models"
	"github.com/jmoon-dev/resumehub/internal/server/repositories/repomanager"
	"github.com/jmoon-dev/resumehub/internal/webutil"
)

const defaultOrderKey = "resumeId"

// sortableKeys is the allow-list of order keys the listing endpoint accepts.
var sortableKeys = map[string]struct{}{
	"resumeId": {},
	"status":   {},
}

// ResumeService provides listing, lookup, and ownership-checked mutation of
// résumé records.
type ResumeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewResumeService constructs a ResumeService.
func NewResumeService(db *sql.DB, m repomanager.RepositoryManager) *ResumeService {
	return &ResumeService{db: db, repomanager: m}
}

// List returns all résumés ordered by orderKey/orderValue. An unknown
// orderKey is rejected with 400; orderValue is matched case-insensitively
// against asc/desc and anything else, including absence, silently falls back
// to descending. The asymmetry is part of the wire contract.
func (s *ResumeService) List(ctx context.Context, orderKey, orderValue string) ([]*models.Resume, error) {
	if orderKey == "" {
		orderKey = defaultOrderKey
	}
	if _, ok := sortableKeys[orderKey]; !ok {
		return nil, webutil.ErrBadRequest("invalid orderKey")
	}

	descending := strings.ToLower(orderValue) != "asc"

	result, err := s.repomanager.Resumes(s.db).List(ctx, orderKey, descending)
	if err != nil {
		return nil, fmt.Errorf("error listing resumes: %w", err)
	}
	return result, nil
}

// Get fetches a single résumé by id.
func (s *ResumeService) Get(ctx context.Context, id int64) (*models.Resume, error) {
	resume, err := s.repomanager.Resumes(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, webutil.ErrNotFound("failed to find resume")
		}
		return nil, fmt.Errorf("error finding resume: %w", err)
	}
	return resume, nil
}

// Create stores a new résumé owned by actor, denormalizing the author's
// display name at creation time.
func (s *ResumeService) Create(ctx context.Context, actor *models.User, title, introduction string) (*models.Resume, error) {
	resume := &models.Resume{
		UserID:       actor.ID,
		Title:        title,
		Introduction: introduction,
		AuthorName:   actor.Name,
	}
	created, err := s.repomanager.Resumes(s.db).Create(ctx, resume)
	if err != nil {
		return nil, fmt.Errorf("error creating resume: %w", err)
	}
	return created, nil
}

// Patch applies a partial update to a résumé. The record is fetched first;
// then the modification policy decides whether actor may touch it (the admin
// grade bypasses the ownership check here).
func (s *ResumeService) Patch(ctx context.Context, actor *models.User, id int64, patch *models.ResumePatch) error {
	repo := s.repomanager.Resumes(s.db)

	resume, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("failed to find resume")
		}
		return fmt.Errorf("error finding resume: %w", err)
	}

	if !auth.CanModify(actor, resume.UserID, auth.ActionPatch) {
		// 401 rather than 403: preserved wire contract.
		return webutil.ErrUnauthorized("no permission to edit resume")
	}

	if err := repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("failed to find resume")
		}
		return fmt.Errorf("error updating resume: %w", err)
	}
	return nil
}

// Delete removes a résumé. Unlike Patch, only the owner may delete; the
// admin grade gets no bypass here.
func (s *ResumeService) Delete(ctx context.Context, actor *models.User, id int64) error {
	repo := s.repomanager.Resumes(s.db)

	resume, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("failed to find resume")
		}
		return fmt.Errorf("error finding resume: %w", err)
	}

	if !auth.CanModify(actor, resume.UserID, auth.ActionDelete) {
		return webutil.ErrUnauthorized("no permission to delete resume")
	}

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return webutil.ErrNotFound("failed to find resume")
		}
		return fmt.Errorf("error deleting resume: %w", err)
	}
	return nil
}

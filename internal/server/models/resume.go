package models

import "time"

// Resume is a document owned by exactly one user. Ownership is set at
// creation and never transferred. AuthorName is a denormalized copy of the
// owner's display name taken at creation time.
type Resume struct {
	ID           int64
	UserID       int64
	Title        string
	Introduction string
	AuthorName   string
	Status       *string
	CreatedAt    time.Time
}

// ResumePatch carries a partial update: nil fields are left unchanged.
type ResumePatch struct {
	Title        *string
	Introduction *string
	Status       *string
}

// Empty reports whether the patch changes nothing.
func (p *ResumePatch) Empty() bool {
	return p.Title == nil && p.Introduction == nil && p.Status == nil
}

package resumes

import (
	"context"

	"github.com/jmoon-dev/resumehub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, resume *models.Resume) (*models.Resume, error)
	FindByID(ctx context.Context, id int64) (*models.Resume, error)
	List(ctx context.Context, orderKey string, descending bool) ([]*models.Resume, error)
	Update(ctx context.Context, id int64, patch *models.ResumePatch) error
	Delete(ctx context.Context, id int64) error
}

package users

import (
	"context"

	"github.com/jmoon-dev/resumehub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByClientID(ctx context.Context, clientID string) (*models.User, error)
}

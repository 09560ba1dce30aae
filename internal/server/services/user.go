// Package services contains server-side business logic. This file implements
// UserService, which handles sign-up, sign-in, and account lookup. Business
// failures are raised as webutil.HTTPError values carrying the status code
// and message translated verbatim at the handler boundary.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoon-dev/resumehub/internal/common"
	"github.com/jmoon-dev/resumehub/internal/dbx"
	"github.com/jmoon-dev/resumehub/internal/server/auth"
	"github.com/jmoon-dev/resumehub/internal/server/config"
	"github.com/jmoon-dev/resumehub/internal/server/models"
	"github.com/jmoon-dev/resumehub/internal/server/repositories/repomanager"
	"github.com/jmoon-dev/resumehub/internal/webutil"
)

// SignUpInput carries a registration request. Either Email+Password (with
// confirmation already checked at the boundary) or ClientID identifies the
// new account.
type SignUpInput struct {
	Email    string
	Password string
	ClientID string
	Name     string
	Grade    models.Grade
}

// SignInInput carries a login request; ClientID selects the external-client
// path, which skips the password check entirely.
type SignInInput struct {
	Email    string
	Password string
	ClientID string
}

// UserService provides registration, login, and account lookup.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.AccessTokenValidityDuration,
	}
}

// SignUp creates a new account. The uniqueness pre-check and the insert run
// in one transaction; the unique indexes on email and client_id remain the
// backstop for concurrent registrations that race past the pre-check.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) error {
	grade := in.Grade
	if grade == "" {
		grade = models.GradeUser
	}

	if in.ClientID != "" {
		return s.signUpClient(ctx, in, grade)
	}
	return s.signUpEmail(ctx, in, grade)
}

func (s *UserService) signUpEmail(ctx context.Context, in SignUpInput, grade models.Grade) error {
	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmail(ctx, in.Email)
		if err == nil {
			return webutil.ErrConflict("email already registered")
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking email: %w", err)
		}

		user := &models.User{
			Email:        in.Email,
			PasswordHash: passwordHash,
			Name:         in.Name,
			Grade:        grade,
		}
		if _, err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return webutil.ErrConflict("email already registered")
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
}

func (s *UserService) signUpClient(ctx context.Context, in SignUpInput, grade models.Grade) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByClientID(ctx, in.ClientID)
		if err == nil {
			return webutil.ErrConflict("user already registered")
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking client id: %w", err)
		}

		user := &models.User{
			ClientID: in.ClientID,
			Name:     in.Name,
			Grade:    grade,
		}
		if _, err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorConflict) {
				return webutil.ErrConflict("user already registered")
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
}

// SignIn verifies the credentials and mints a session token embedding the
// user id. The external-client path treats possession of the client id as
// proof of identity: no secret is verified. That trust assumption is carried
// over from the upstream contract on purpose.
func (s *UserService) SignIn(ctx context.Context, in SignInInput) (string, error) {
	repo := s.repomanager.Users(s.db)

	var user *models.User
	var err error

	if in.ClientID != "" {
		user, err = repo.FindByClientID(ctx, in.ClientID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return "", webutil.ErrUnauthorized("invalid login information")
			}
			return "", fmt.Errorf("error finding user: %w", err)
		}
	} else {
		user, err = repo.FindByEmail(ctx, in.Email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return "", webutil.ErrUnauthorized("email does not exist")
			}
			return "", fmt.Errorf("error finding user: %w", err)
		}
		if !auth.CheckPassword(user.PasswordHash, in.Password) {
			return "", webutil.ErrUnauthorized("password does not match")
		}
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// GetByID fetches an account by id. A missing account is reported as
// common.ErrorNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// Package users provides the PostgreSQL-backed repository for account
// records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoon-dev/resumehub/internal/common"
	"github.com/jmoon-dev/resumehub/internal/dbx"
	"github.com/jmoon-dev/resumehub/internal/server/models"
)

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. The unique indexes on email and client_id are the backstop for
// the application-level uniqueness pre-checks.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, client_id, name, grade)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		nullable(user.Email), nullable(user.PasswordHash), nullable(user.ClientID),
		user.Name, string(user.Grade)).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const userColumns = `id, email, password_hash, client_id, name, grade, created_at`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var email, passwordHash, clientID sql.NullString
	var grade string

	err := row.Scan(&user.ID, &email, &passwordHash, &clientID, &user.Name, &grade, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Email = email.String
	user.PasswordHash = passwordHash.String
	user.ClientID = clientID.String
	user.Grade = models.Grade(grade)
	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) FindByClientID(ctx context.Context, clientID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE client_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, clientID))
}

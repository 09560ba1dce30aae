// Package resumes provides the PostgreSQL-backed repository for résumé
// records.
package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoon-dev/resumehub/internal/common"
	"github.com/jmoon-dev/resumehub/internal/dbx"
	"github.com/jmoon-dev/resumehub/internal/server/models"
)

// orderColumns maps the exposed order keys onto real columns. Keys outside
// this map are rejected before any SQL is built.
var orderColumns = map[string]string{
	"resumeId": "id",
	"status":   "status",
}

// PostgresRepository implements résumé storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, resume *models.Resume) (*models.Resume, error) {

	query :=
		`INSERT INTO resumes (user_id, title, introduction, author_name, status)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	var status sql.NullString
	if resume.Status != nil {
		status = sql.NullString{String: *resume.Status, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		resume.UserID, resume.Title, resume.Introduction, resume.AuthorName, status).
		Scan(&resume.ID, &resume.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return resume, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Resume, error) {
	query :=
		`SELECT id, user_id, title, introduction, author_name, status, created_at FROM resumes
		 WHERE id = $1
		 `

	resume := &models.Resume{}
	var status sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&resume.ID, &resume.UserID, &resume.Title, &resume.Introduction,
		&resume.AuthorName, &status, &resume.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if status.Valid {
		resume.Status = &status.String
	}
	return resume, nil
}

// List returns all résumés ordered by the given key. orderKey must be one of
// the exposed order keys; callers validate it against the allow-list first.
func (r *PostgresRepository) List(ctx context.Context, orderKey string, descending bool) ([]*models.Resume, error) {
	column, ok := orderColumns[orderKey]
	if !ok {
		return nil, fmt.Errorf("unsortable key: %s", orderKey)
	}

	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		`SELECT id, user_id, title, introduction, author_name, status, created_at FROM resumes
		 ORDER BY %s %s`, column, direction)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select resumes: %w", err)
	}
	defer rows.Close()

	var result []*models.Resume
	for rows.Next() {
		var item models.Resume
		var status sql.NullString
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Introduction,
			&item.AuthorName, &status, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if status.Valid {
			item.Status = &status.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update applies the non-nil fields of patch to the résumé row. An empty
// patch is a no-op. A missing row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch *models.ResumePatch) error {
	if patch.Empty() {
		return nil
	}

	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(column string, value string) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Introduction != nil {
		add("introduction", *patch.Introduction)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE resumes SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

package users

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoon-dev/resumehub/internal/common"
	"github.com/jmoon-dev/resumehub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*password_hash,\s*client_id,\s*name,\s*grade\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created)
	mock.ExpectQuery(insertQuery).
		WithArgs("a@b.com", "digest", nil, "A", "user").
		WillReturnRows(rows)

	u := &models.User{Email: "a@b.com", PasswordHash: "digest", Name: "A", Grade: models.GradeUser}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_ClientID_NullEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now())
	mock.ExpectQuery(insertQuery).
		WithArgs(nil, nil, "kakao-123", "B", "user").
		WillReturnRows(rows)

	u := &models.User{ClientID: "kakao-123", Name: "B", Grade: models.GradeUser}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("a@b.com", "digest", nil, "A", "user").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@b.com", PasswordHash: "digest", Name: "A", Grade: models.GradeUser})
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("a@b.com", "digest", nil, "A", "user").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "a@b.com", PasswordHash: "digest", Name: "A", Grade: models.GradeUser})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const selectByEmailQuery = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*client_id,\s*name,\s*grade,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

// ns mimics a nullable text column: empty means NULL.
func ns(s string) driver.Value {
	if s == "" {
		return nil
	}
	return s
}

func userRows(id int64, email, hash, clientID, name, grade string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "client_id", "name", "grade", "created_at"}).
		AddRow(id, ns(email), ns(hash), ns(clientID), name, grade, time.Now())
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQuery).
		WithArgs("a@b.com").
		WillReturnRows(userRows(1, "a@b.com", "digest", "", "A", "admin"))

	got, err := repo.FindByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if got.ID != 1 || got.Email != "a@b.com" || got.Grade != models.GradeAdmin {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.ClientID != "" {
		t.Fatalf("expected empty client id, got %q", got.ClientID)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailQuery).
		WithArgs("ghost@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@b.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByClientID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*client_id,\s*name,\s*grade,\s*created_at\s+FROM\s+users\s+WHERE\s+client_id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("kakao-123").
		WillReturnRows(userRows(2, "", "", "kakao-123", "B", "user"))

	got, err := repo.FindByClientID(context.Background(), "kakao-123")
	if err != nil {
		t.Fatalf("FindByClientID error: %v", err)
	}
	if got.ID != 2 || got.ClientID != "kakao-123" || got.Email != "" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*client_id,\s*name,\s*grade,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db err"))

	_, err := repo.FindByID(context.Background(), 1)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is not a unique violation")
	}
	if IsUniqueViolation(errors.New("random")) {
		t.Fatal("plain errors are not unique violations")
	}
}

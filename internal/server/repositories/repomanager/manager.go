package repomanager

import (
	"context"
	"database/sql"

	"github.com/jmoon-dev/resumehub/internal/dbx"
	"github.com/jmoon-dev/resumehub/internal/server/repositories/resumes"
	"github.com/jmoon-dev/resumehub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Resumes(db dbx.DBTX) resumes.Repository
}

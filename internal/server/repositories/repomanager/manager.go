package repomanager

import (
	"context"
	"database/sql"

	"github.com/tnguye65/pokecollection/internal/dbx"
	"github.com/tnguye65/pokecollection/internal/server/repositories/collection"
	"github.com/tnguye65/pokecollection/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Collection(db dbx.DBTX) collection.Repository
}

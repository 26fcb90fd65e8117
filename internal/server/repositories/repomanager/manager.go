package repomanager

import (
	"context"
	"database/sql"

	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/lists"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and prepares the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Lists(db dbx.DBTX) lists.Repository
}

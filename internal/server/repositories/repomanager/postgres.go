// Package repomanager provides RepositoryManager implementations: one for
// PostgreSQL with goose migrations, one in memory.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/server/migrations"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/lists"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Lists returns a lists.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Lists(db dbx.DBTX) lists.Repository {
	return lists.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations with goose.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

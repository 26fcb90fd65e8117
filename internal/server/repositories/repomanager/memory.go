package repomanager

import (
	"context"
	"database/sql"

	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/lists"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same in-memory repositories whatever
// DBTX it is given. Nothing survives a restart.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	lists *lists.MemoryRepository
}

// NewMemoryRepositoryManager returns a manager over empty in-memory stores.
func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		lists: lists.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Lists(dbx.DBTX) lists.Repository { return m.lists }

// RunMigrations is a no-op; the in-memory store has no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// Package users persists user accounts, including the single stored
// refresh token of each user.
package users

import (
	"context"

	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
)

// Repository is the persistence contract for users.
//
// Lookups return common.ErrorNotFound when nothing matches. Writes that
// collide on email return common.ErrDuplicateIdentity.
type Repository interface {
	// Create inserts user with its caller-assigned ID and current refresh token.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Save writes names, email, password hash and refresh token. The role
	// is never changed by Save.
	Save(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
}

// Package rbac holds the authorization predicates applied after a request
// has been authenticated. They know nothing about HTTP.
package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/google/uuid"
)

// OwnedListFinder looks up a list by id restricted to one owner. A list that
// is missing or owned by someone else yields an error matching
// common.ErrorNotFound.
type OwnedListFinder interface {
	GetOwned(ctx context.Context, id, ownerID string) (*models.List, error)
}

// RequireRole succeeds when user holds one of roles.
func RequireRole(user *models.User, roles ...models.Role) error {
	if user == nil {
		return common.ErrUnauthenticated
	}
	if !user.HasRole(roles...) {
		return common.ErrForbidden
	}
	return nil
}

// RequireListOwner succeeds when user owns list id. Missing lists and lists
// owned by others both yield common.ErrForbidden.
func RequireListOwner(ctx context.Context, finder OwnedListFinder, id string, user *models.User) error {
	if user == nil {
		return common.ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return common.NewValidationError("id", "Invalid ID")
	}

	if _, err := finder.GetOwned(ctx, id, user.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrForbidden
		}
		return fmt.Errorf("ownership check: %w", err)
	}
	return nil
}

// Package lists persists shopping lists, their items and the users they
// are shared with.
package lists

import (
	"context"

	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
)

// Repository is the persistence contract for lists. Lookups and updates of
// a missing list or item return common.ErrorNotFound. IDs must be well-formed UUIDs.
type Repository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	GetByID(ctx context.Context, id string) (*models.List, error)
	// GetOwned returns the list only if ownerID owns it.
	GetOwned(ctx context.Context, id, ownerID string) (*models.List, error)
	// ListByMember returns lists owned by or shared with userID.
	ListByMember(ctx context.Context, userID string) ([]*models.List, error)
	ListAll(ctx context.Context) ([]*models.List, error)
	// Update writes title and icon.
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, id string) error
	AddInvited(ctx context.Context, listID, userID string) error
	RemoveInvited(ctx context.Context, listID, userID string) error

	// AddItem appends item to listID and fills in its id and timestamps.
	AddItem(ctx context.Context, listID string, item *models.Item) error
	// UpdateItem overwrites every field of the item with item.ID in listID.
	UpdateItem(ctx context.Context, listID string, item *models.Item) error
	RemoveItem(ctx context.Context, listID, itemID string) error
}

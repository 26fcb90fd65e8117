package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/JokeryEU/shoplistapp-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ItemInput holds the fields of a new list item.
type ItemInput struct {
	Name         string
	Category     string
	Unit         string
	Quantity     *float64
	Price        *float64
	IsFavorite   bool
	IsPinned     bool
	IsCrossedOff bool
}

// ItemPatch changes some fields of an item. Nil fields are left as they are.
type ItemPatch struct {
	Name         *string
	Category     *string
	Unit         *string
	Quantity     *float64
	Price        *float64
	IsFavorite   *bool
	IsPinned     *bool
	IsCrossedOff *bool
}

// ListService manages shopping lists, their items and their invited members. Ownership
// is enforced before these methods are called; they only map storage
// failures to domain errors.
type ListService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewListService(db dbx.DBTX, m repomanager.RepositoryManager) *ListService {
	return &ListService{db: db, repomanager: m}
}

// Create stores a new list owned by owner.
func (s *ListService) Create(ctx context.Context, owner *models.User, title, icon string) (*models.List, error) {
	list := &models.List{
		UserID:  owner.ID,
		Title:   title,
		Icon:    icon,
		Invited: []string{},
		Items:   []models.Item{},
	}
	created, err := s.repomanager.Lists(s.db).Create(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("error creating list: %w", err)
	}
	return created, nil
}

// ListForUser returns lists owned by or shared with userID.
func (s *ListService) ListForUser(ctx context.Context, userID string) ([]*models.List, error) {
	lists, err := s.repomanager.Lists(s.db).ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing lists: %w", err)
	}
	return lists, nil
}

func (s *ListService) ListAll(ctx context.Context) ([]*models.List, error) {
	lists, err := s.repomanager.Lists(s.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing lists: %w", err)
	}
	return lists, nil
}

func (s *ListService) Get(ctx context.Context, id string) (*models.List, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Lists(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, mapListError(err)
	}
	return list, nil
}

// GetOwned returns the list only when ownerID owns it; otherwise
// common.ErrListNotFound.
func (s *ListService) GetOwned(ctx context.Context, id, ownerID string) (*models.List, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Lists(s.db).GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapListError(err)
	}
	return list, nil
}

// Update changes the title and icon of list id.
func (s *ListService) Update(ctx context.Context, id, title, icon string) (*models.List, error) {
	repo := s.repomanager.Lists(s.db)

	list, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Title = title
	list.Icon = icon

	if err := repo.Update(ctx, list); err != nil {
		return nil, mapListError(err)
	}
	return list, nil
}

func (s *ListService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repomanager.Lists(s.db).Delete(ctx, id); err != nil {
		return mapListError(err)
	}
	return nil
}

// Invite shares list id with the user registered under email. Inviting an
// existing member is a no-op.
func (s *ListService) Invite(ctx context.Context, id, email string) (*models.List, error) {
	list, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	guest, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if guest.ID == list.UserID {
		return nil, common.NewValidationError("email", "Owner cannot be invited")
	}

	if err := s.repomanager.Lists(s.db).AddInvited(ctx, id, guest.ID); err != nil {
		return nil, mapListError(err)
	}
	return s.Get(ctx, id)
}

// Uninvite removes the user registered under email from list id.
func (s *ListService) Uninvite(ctx context.Context, id, email string) (*models.List, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	guest, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Lists(s.db).RemoveInvited(ctx, id, guest.ID); err != nil {
		return nil, mapListError(err)
	}
	return s.Get(ctx, id)
}

// AddItem appends a new item to list id and returns the updated list.
func (s *ListService) AddItem(ctx context.Context, id string, in ItemInput) (*models.List, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		Quantity:     in.Quantity,
		Price:        in.Price,
		IsFavorite:   in.IsFavorite,
		IsPinned:     in.IsPinned,
		IsCrossedOff: in.IsCrossedOff,
	}
	if err := s.repomanager.Lists(s.db).AddItem(ctx, id, item); err != nil {
		return nil, mapListError(err)
	}
	return s.Get(ctx, id)
}

// UpdateItem applies patch to item itemID of list id and returns the list.
func (s *ListService) UpdateItem(ctx context.Context, id, itemID string, patch ItemPatch) (*models.List, error) {
	list, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateItemID(itemID); err != nil {
		return nil, err
	}

	item := list.Item(itemID)
	if item == nil {
		return nil, common.ErrItemNotFound
	}
	patch.apply(item)

	if err := s.repomanager.Lists(s.db).UpdateItem(ctx, id, item); err != nil {
		return nil, mapItemError(err)
	}
	return list, nil
}

// RemoveItem deletes item itemID from list id.
func (s *ListService) RemoveItem(ctx context.Context, id, itemID string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := validateItemID(itemID); err != nil {
		return err
	}

	if err := s.repomanager.Lists(s.db).RemoveItem(ctx, id, itemID); err != nil {
		return mapItemError(err)
	}
	return nil
}

func (p ItemPatch) apply(it *models.Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.Quantity != nil {
		it.Quantity = p.Quantity
	}
	if p.Price != nil {
		it.Price = p.Price
	}
	if p.IsFavorite != nil {
		it.IsFavorite = *p.IsFavorite
	}
	if p.IsPinned != nil {
		it.IsPinned = *p.IsPinned
	}
	if p.IsCrossedOff != nil {
		it.IsCrossedOff = *p.IsCrossedOff
	}
}

func (s *ListService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.NewValidationError("id", "Invalid ID")
	}
	return nil
}

func validateItemID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.NewValidationError("itemId", "Invalid ID")
	}
	return nil
}

func mapItemError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrItemNotFound
	}
	return fmt.Errorf("list storage: %w", err)
}

func mapListError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrListNotFound
	}
	return fmt.Errorf("list storage: %w", err)
}

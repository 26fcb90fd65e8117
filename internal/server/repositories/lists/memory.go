package lists

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps lists in a map for the memory:// store and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	lists map[string]models.List
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[string]models.List)}
}

func (r *MemoryRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	list.ID = uuid.NewString()
	list.CreatedAt, list.UpdatedAt = now, now
	if list.Invited == nil {
		list.Invited = []string{}
	}
	if list.Items == nil {
		list.Items = []models.Item{}
	}
	r.lists[list.ID] = clone(*list)
	return list, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := clone(l)
	return &c, nil
}

func (r *MemoryRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.List, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return l, nil
}

func (r *MemoryRepository) ListByMember(ctx context.Context, userID string) ([]*models.List, error) {
	return r.filter(func(l *models.List) bool { return l.IsMember(userID) }), nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]*models.List, error) {
	return r.filter(func(*models.List) bool { return true }), nil
}

func (r *MemoryRepository) Update(ctx context.Context, list *models.List) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.lists[list.ID]
	if !ok {
		return common.ErrorNotFound
	}
	stored.Title = list.Title
	stored.Icon = list.Icon
	stored.UpdatedAt = time.Now().UTC()
	r.lists[list.ID] = stored
	list.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.lists, id)
	return nil
}

func (r *MemoryRepository) AddInvited(ctx context.Context, listID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[listID]
	if !ok {
		return common.ErrorNotFound
	}
	for _, id := range l.Invited {
		if id == userID {
			return nil
		}
	}
	l.Invited = append(append([]string{}, l.Invited...), userID)
	sort.Strings(l.Invited)
	r.lists[listID] = l
	return nil
}

func (r *MemoryRepository) RemoveInvited(ctx context.Context, listID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[listID]
	if !ok {
		return nil
	}
	kept := make([]string, 0, len(l.Invited))
	for _, id := range l.Invited {
		if id != userID {
			kept = append(kept, id)
		}
	}
	l.Invited = kept
	r.lists[listID] = l
	return nil
}

func (r *MemoryRepository) AddItem(ctx context.Context, listID string, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[listID]
	if !ok {
		return common.ErrorNotFound
	}
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt, item.UpdatedAt = now, now

	l = clone(l)
	l.Items = append(l.Items, cloneItem(*item))
	r.lists[listID] = l
	return nil
}

func (r *MemoryRepository) UpdateItem(ctx context.Context, listID string, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[listID]
	if !ok {
		return common.ErrorNotFound
	}
	l = clone(l)
	stored := l.Item(item.ID)
	if stored == nil {
		return common.ErrorNotFound
	}
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	*stored = cloneItem(*item)
	r.lists[listID] = l
	return nil
}

func (r *MemoryRepository) RemoveItem(ctx context.Context, listID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[listID]
	if !ok || l.Item(itemID) == nil {
		return common.ErrorNotFound
	}
	kept := make([]models.Item, 0, len(l.Items))
	for _, it := range l.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	l.Items = kept
	r.lists[listID] = l
	return nil
}

func (r *MemoryRepository) filter(keep func(*models.List) bool) []*models.List {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.List, 0)
	for _, l := range r.lists {
		c := clone(l)
		if keep(&c) {
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func clone(l models.List) models.List {
	l.Invited = append([]string{}, l.Invited...)
	items := make([]models.Item, 0, len(l.Items))
	for _, it := range l.Items {
		items = append(items, cloneItem(it))
	}
	l.Items = items
	return l
}

func cloneItem(it models.Item) models.Item {
	if it.Quantity != nil {
		q := *it.Quantity
		it.Quantity = &q
	}
	if it.Price != nil {
		p := *it.Price
		it.Price = &p
	}
	return it
}

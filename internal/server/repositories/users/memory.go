package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
)

// MemoryRepository keeps users in a map. It backs the memory:// store and
// the HTTP tests. Stored values are copied in and out.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return nil, common.ErrDuplicateIdentity
	}
	if r.emailTaken(user.Email, "") {
		return nil, common.ErrDuplicateIdentity
	}

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Save(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return common.ErrDuplicateIdentity
	}

	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.RefreshToken = user.RefreshToken
	stored.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = stored

	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		result = append(result, &u)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// emailTaken must be called with mu held.
func (r *MemoryRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

package api

import (
	"strings"

	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
)

// registerRequest has no role field; any role sent by the client is dropped.
type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
}

func (r *registerRequest) normalize() {
	r.Email = services.NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *loginRequest) normalize() {
	r.Email = services.NormalizeEmail(r.Email)
}

type profileUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
}

func (r *profileUpdateRequest) normalize() {
	if r.Email != nil {
		e := services.NormalizeEmail(*r.Email)
		r.Email = &e
	}
}

type listRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
	Icon  string `json:"icon" validate:"max=100"`
}

func (r *listRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *inviteRequest) normalize() {
	r.Email = services.NormalizeEmail(r.Email)
}

type itemRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=120"`
	Category     string   `json:"category" validate:"max=120"`
	Unit         string   `json:"unit" validate:"max=50"`
	Quantity     *float64 `json:"quantity"`
	Price        *float64 `json:"price"`
	IsFavorite   bool     `json:"isFavorite"`
	IsPinned     bool     `json:"isPinned"`
	IsCrossedOff bool     `json:"isCrossedOff"`
}

func (r *itemRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Unit = strings.TrimSpace(r.Unit)
}

func (r *itemRequest) input() services.ItemInput {
	return services.ItemInput{
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		Quantity:     r.Quantity,
		Price:        r.Price,
		IsFavorite:   r.IsFavorite,
		IsPinned:     r.IsPinned,
		IsCrossedOff: r.IsCrossedOff,
	}
}

// itemUpdateRequest is itemRequest with every field optional.
type itemUpdateRequest struct {
	Name         *string  `json:"name" validate:"omitnil,min=1,max=120"`
	Category     *string  `json:"category" validate:"omitempty,max=120"`
	Unit         *string  `json:"unit" validate:"omitempty,max=50"`
	Quantity     *float64 `json:"quantity"`
	Price        *float64 `json:"price"`
	IsFavorite   *bool    `json:"isFavorite"`
	IsPinned     *bool    `json:"isPinned"`
	IsCrossedOff *bool    `json:"isCrossedOff"`
}

func (r *itemUpdateRequest) normalize() {
	for _, f := range []*string{r.Name, r.Category, r.Unit} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r *itemUpdateRequest) patch() services.ItemPatch {
	return services.ItemPatch{
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		Quantity:     r.Quantity,
		Price:        r.Price,
		IsFavorite:   r.IsFavorite,
		IsPinned:     r.IsPinned,
		IsCrossedOff: r.IsCrossedOff,
	}
}

type userResponse struct {
	User *models.User `json:"user"`
}

package models

import "time"

// List is a shopping list. UserID is the owner and never changes after
// creation. Invited holds ids of users the list is shared with.
type List struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	Invited   []string  `json:"invited"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is one entry on a list. Quantity and Price are nil when unset.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	Quantity     *float64  `json:"quantity"`
	Price        *float64  `json:"price"`
	IsFavorite   bool      `json:"isFavorite"`
	IsPinned     bool      `json:"isPinned"`
	IsCrossedOff bool      `json:"isCrossedOff"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Item returns the item with the given id, or nil.
func (l *List) Item(id string) *Item {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// IsMember reports whether userID owns the list or was invited to it.
func (l *List) IsMember(userID string) bool {
	if l.UserID == userID {
		return true
	}
	for _, id := range l.Invited {
		if id == userID {
			return true
		}
	}
	return false
}

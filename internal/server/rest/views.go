package rest

import (
	"time"

	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type accountResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message,omitempty"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type updateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type addCardRequest struct {
	CardID    string  `json:"cardId" binding:"required,max=64"`
	Variant   string  `json:"variant" binding:"required,max=32"`
	Quantity  int     `json:"quantity"`
	Condition *string `json:"condition" binding:"omitempty,max=32"`
	Notes     *string `json:"notes" binding:"omitempty,max=500"`
}

type updateItemRequest struct {
	Quantity  *int    `json:"quantity"`
	Condition *string `json:"condition" binding:"omitempty,max=32"`
	Notes     *string `json:"notes" binding:"omitempty,max=500"`
}

// collectionItemView is a stored item plus live catalog details.
// CardDetails is null when the lookup failed.
type collectionItemView struct {
	ID          int64         `json:"id"`
	CardID      string        `json:"cardId"`
	Variant     string        `json:"variant"`
	Quantity    int           `json:"quantity"`
	Condition   *string       `json:"condition"`
	Notes       *string       `json:"notes"`
	AddedDate   time.Time     `json:"addedDate"`
	UpdatedDate time.Time     `json:"updatedDate"`
	CardDetails *catalog.Card `json:"cardDetails"`
}

type statsResponse struct {
	TotalCards  int64 `json:"totalCards"`
	UniqueCards int64 `json:"uniqueCards"`
}

func newProfileResponse(u *models.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newItemView(item *models.CollectionItem, card *catalog.Card) collectionItemView {
	return collectionItemView{
		ID:          item.ID,
		CardID:      item.CardID,
		Variant:     item.Variant,
		Quantity:    item.Quantity,
		Condition:   item.Condition,
		Notes:       item.Notes,
		AddedDate:   item.AddedAt,
		UpdatedDate: item.UpdatedAt,
		CardDetails: card,
	}
}

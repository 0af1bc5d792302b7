package client

import (
	"context"

	"github.com/tnguye65/pokecollection/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, email string, password []byte) (*models.Account, error)
	Login(ctx context.Context, email string, password []byte) (*models.Account, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Account, error)
	AddCard(ctx context.Context, req models.AddCardRequest) (*models.CollectionItem, error)
	ListCollection(ctx context.Context) ([]models.CollectionItem, error)
	UpdateItem(ctx context.Context, id int64, req models.UpdateItemRequest) (*models.CollectionItem, error)
	RemoveItem(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.Stats, error)
	SearchCards(ctx context.Context, name string) ([]models.CardBrief, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
}

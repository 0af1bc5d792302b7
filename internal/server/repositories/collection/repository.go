package collection

import (
	"context"

	"github.com/tnguye65/pokecollection/internal/server/models"
)

type Repository interface {
	// Upsert inserts the item or, when (user, card, variant) already exists,
	// adds item.Quantity to the stored quantity in one statement.
	Upsert(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error)
	GetByID(ctx context.Context, id int64) (*models.CollectionItem, error)
	Update(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID string) ([]*models.CollectionItem, error)
	Stats(ctx context.Context, userID string) (*models.CollectionStats, error)
	Exists(ctx context.Context, userID, cardID, variant string) (bool, error)
}

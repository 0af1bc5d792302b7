package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"github.com/tnguye65/pokecollection/internal/server/repositories/repomanager"
)

// CardCatalog resolves catalog card ids.
type CardCatalog interface {
	GetCard(ctx context.Context, id string) (*catalog.Card, error)
}

type AddCardInput struct {
	CardID    string
	Variant   string
	Quantity  int
	Condition *string
	Notes     *string
}

// UpdateItemInput is a partial update; nil fields are left unchanged.
type UpdateItemInput struct {
	Quantity  *int
	Condition *string
	Notes     *string
}

type CollectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	catalog     CardCatalog
}

func NewCollectionService(db *sql.DB, m repomanager.RepositoryManager, c CardCatalog) *CollectionService {
	return &CollectionService{db: db, repomanager: m, catalog: c}
}

func validateNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > common.MaxNotesLength {
		return fmt.Errorf("%w: notes cannot exceed %d characters", common.ErrValidation, common.MaxNotesLength)
	}
	return nil
}

func validateLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s cannot exceed %d characters", common.ErrValidation, field, limit)
	}
	return nil
}

func validateQuantity(q int) error {
	if q < 1 || q > common.MaxQuantity {
		return common.ErrInvalidQuantity
	}
	return nil
}

// validateItemFields checks the optional fields shared by add and update.
func validateItemFields(condition, notes *string) error {
	if condition != nil {
		if err := validateLength("condition", *condition, common.MaxConditionLength); err != nil {
			return err
		}
	}
	return validateNotes(notes)
}

// ensureUser maps a missing or malformed user id to ErrUserNotFound.
func (s *CollectionService) ensureUser(ctx context.Context, userID string) (string, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return "", err
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	return id, nil
}

// authorize loads an item on behalf of userID. Items of other users are
// reported exactly like missing ones.
func (s *CollectionService) authorize(ctx context.Context, userID string, itemID int64) (*models.CollectionItem, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, common.ErrItemNotFound
	}

	item, err := s.repomanager.Collection(s.db).GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrItemNotFound
		}
		return nil, fmt.Errorf("error loading item: %w", err)
	}

	if item.UserID != id {
		return nil, common.ErrItemNotFound
	}

	return item, nil
}

// AddCard adds quantity copies of a card variant. An existing
// (user, card, variant) row is incremented instead of duplicated.
func (s *CollectionService) AddCard(ctx context.Context, userID string, in AddCardInput) (*models.CollectionItem, error) {

	in.CardID = strings.TrimSpace(in.CardID)
	in.Variant = strings.TrimSpace(in.Variant)

	switch {
	case in.CardID == "":
		return nil, fmt.Errorf("%w: cardId is required", common.ErrValidation)
	case in.Variant == "":
		return nil, fmt.Errorf("%w: variant is required", common.ErrValidation)
	}
	if err := validateLength("cardId", in.CardID, common.MaxCardIDLength); err != nil {
		return nil, err
	}
	if err := validateLength("variant", in.Variant, common.MaxVariantLength); err != nil {
		return nil, err
	}
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if err := validateItemFields(in.Condition, in.Notes); err != nil {
		return nil, err
	}

	id, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.catalog.GetCard(ctx, in.CardID); err != nil {
		return nil, err
	}

	item, err := s.repomanager.Collection(s.db).Upsert(ctx, &models.CollectionItem{
		UserID:    id,
		CardID:    in.CardID,
		Variant:   in.Variant,
		Quantity:  in.Quantity,
		Condition: in.Condition,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving item: %w", err)
	}

	return item, nil
}

func (s *CollectionService) UpdateItem(ctx context.Context, userID string, itemID int64, in UpdateItemInput) (*models.CollectionItem, error) {
	if in.Quantity != nil {
		if err := validateQuantity(*in.Quantity); err != nil {
			return nil, err
		}
	}
	if err := validateItemFields(in.Condition, in.Notes); err != nil {
		return nil, err
	}

	item, err := s.authorize(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Condition != nil {
		item.Condition = in.Condition
	}
	if in.Notes != nil {
		item.Notes = in.Notes
	}

	updated, err := s.repomanager.Collection(s.db).Update(ctx, item)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrItemNotFound
		}
		return nil, fmt.Errorf("error updating item: %w", err)
	}

	return updated, nil
}

func (s *CollectionService) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	if _, err := s.authorize(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.repomanager.Collection(s.db).Delete(ctx, itemID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrItemNotFound
		}
		return fmt.Errorf("error deleting item: %w", err)
	}

	return nil
}

// ListCollection returns the user's items in insertion order, never nil.
func (s *CollectionService) ListCollection(ctx context.Context, userID string) ([]*models.CollectionItem, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return []*models.CollectionItem{}, nil
	}

	items, err := s.repomanager.Collection(s.db).ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing collection: %w", err)
	}
	if items == nil {
		items = []*models.CollectionItem{}
	}

	return items, nil
}

func (s *CollectionService) Stats(ctx context.Context, userID string) (*models.CollectionStats, error) {
	id, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.repomanager.Collection(s.db).Stats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

func (s *CollectionService) OwnsCard(ctx context.Context, userID, cardID, variant string) (bool, error) {
	id, err := s.ensureUser(ctx, userID)
	if err != nil {
		return false, err
	}

	cardID, variant = strings.TrimSpace(cardID), strings.TrimSpace(variant)
	if cardID == "" || variant == "" {
		return false, fmt.Errorf("%w: cardId and variant are required", common.ErrValidation)
	}

	owned, err := s.repomanager.Collection(s.db).Exists(ctx, id, cardID, variant)
	if err != nil {
		return false, fmt.Errorf("error checking ownership: %w", err)
	}

	return owned, nil
}

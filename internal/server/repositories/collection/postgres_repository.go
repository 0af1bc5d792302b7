package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/dbx"
	"github.com/tnguye65/pokecollection/internal/server/models"
)

const itemColumns = `id, user_id, card_id, variant, quantity, condition, notes, added_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.CollectionItem, error) {
	item := &models.CollectionItem{}
	var condition, notes sql.NullString

	err := s.Scan(&item.ID, &item.UserID, &item.CardID, &item.Variant, &item.Quantity,
		&condition, &notes, &item.AddedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if condition.Valid {
		item.Condition = &condition.String
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	return item, nil
}

// mapWriteError turns values rejected by column types or checks into
// ErrValidation.
func mapWriteError(err error) error {
	if dbx.InvalidInput(err) {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Upsert(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {

	query :=
		`INSERT INTO collection_items (user_id, card_id, variant, quantity, condition, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, card_id, variant) DO UPDATE
		 SET quantity = collection_items.quantity + EXCLUDED.quantity,
		     notes = COALESCE(EXCLUDED.notes, collection_items.notes),
		     updated_at = now()
		 WHERE collection_items.quantity + EXCLUDED.quantity <= $7
		 RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRowContext(ctx, query,
		item.UserID, item.CardID, item.Variant, item.Quantity, item.Condition, item.Notes, common.MaxQuantity))

	if err != nil {
		// The conflict branch returns no row when the total would exceed the cap.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidQuantity
		}
		return nil, mapWriteError(err)
	}

	return saved, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.CollectionItem, error) {
	query := `SELECT ` + itemColumns + ` FROM collection_items WHERE id = $1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Update writes quantity, condition and notes of an existing item.
func (r *PostgresRepository) Update(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {
	query :=
		`UPDATE collection_items
		 SET quantity = $2, condition = $3, notes = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRowContext(ctx, query, item.ID, item.Quantity, item.Condition, item.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, mapWriteError(err)
	}

	return saved, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collection_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// ListByUser returns the user's items in insertion order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.CollectionItem, error) {
	query := `SELECT ` + itemColumns + ` FROM collection_items WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*models.CollectionItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) Stats(ctx context.Context, userID string) (*models.CollectionStats, error) {
	query :=
		`SELECT COALESCE(SUM(quantity), 0), COUNT(DISTINCT card_id)
		 FROM collection_items
		 WHERE user_id = $1
		 `

	stats := &models.CollectionStats{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.TotalCards, &stats.UniqueCards)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stats, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, cardID, variant string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM collection_items
		   WHERE user_id = $1 AND card_id = $2 AND variant = $3
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, cardID, variant).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

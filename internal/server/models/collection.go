package models

import "time"

// CollectionItem records how many copies of one card variant a user owns.
// (UserID, CardID, Variant) is unique; repeated adds increase Quantity.
type CollectionItem struct {
	ID        int64
	UserID    string
	CardID    string
	Variant   string
	Quantity  int
	Condition *string
	Notes     *string
	AddedAt   time.Time
	UpdatedAt time.Time
}

// CollectionStats summarises a user's collection.
type CollectionStats struct {
	// TotalCards is the sum of quantities across all items.
	TotalCards int64
	// UniqueCards counts distinct catalog card ids, ignoring variants.
	UniqueCards int64
}

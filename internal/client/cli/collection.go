package cli

import (
	"context"
	"fmt"

	"github.com/tnguye65/pokecollection/internal/client/models"
)

// Add prompts for a card and adds copies of it. Adding a card/variant pair
// that is already owned raises its quantity on the server.
func (a *App) Add(ctx context.Context) error {
	cardID, err := getSimpleText(a.reader, "Enter card id (e.g. base1-4)", a.out)
	if err != nil {
		return a.fail(err)
	}

	variant, err := getSimpleText(a.reader, "Enter variant [normal]", a.out)
	if err != nil {
		return a.fail(err)
	}
	if variant == "" {
		variant = "normal"
	}

	quantity, err := GetOptionalInt(a.reader, "Enter quantity [1]", a.out)
	if err != nil {
		return a.fail(err)
	}
	req := models.AddCardRequest{CardID: cardID, Variant: variant, Quantity: 1}
	if quantity != nil {
		req.Quantity = *quantity
	}

	if req.Condition, err = GetOptionalText(a.reader, "Enter condition", a.out); err != nil {
		return a.fail(err)
	}
	if req.Notes, err = GetOptionalText(a.reader, "Enter notes", a.out); err != nil {
		return a.fail(err)
	}

	item, err := a.api.AddCard(ctx, req)
	if err != nil {
		return a.fail(err)
	}

	a.println("Saved:", item.Summary())
	return nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListCollection(ctx)
	if err != nil {
		return a.fail(err)
	}

	if len(items) == 0 {
		a.println("Your collection is empty")
		return nil
	}
	for i := range items {
		a.println(items[i].Summary())
	}
	return nil
}

// Update changes only the fields the user fills in.
func (a *App) Update(ctx context.Context) error {
	id, err := GetID(a.reader, a.out)
	if err != nil {
		return a.fail(err)
	}

	var req models.UpdateItemRequest
	if req.Quantity, err = GetOptionalInt(a.reader, "Enter new quantity", a.out); err != nil {
		return a.fail(err)
	}
	if req.Condition, err = GetOptionalText(a.reader, "Enter new condition", a.out); err != nil {
		return a.fail(err)
	}
	if req.Notes, err = GetOptionalText(a.reader, "Enter new notes", a.out); err != nil {
		return a.fail(err)
	}

	item, err := a.api.UpdateItem(ctx, id, req)
	if err != nil {
		return a.fail(err)
	}

	a.println("Updated:", item.Summary())
	return nil
}

func (a *App) Remove(ctx context.Context) error {
	id, err := GetID(a.reader, a.out)
	if err != nil {
		return a.fail(err)
	}

	if err := a.api.RemoveItem(ctx, id); err != nil {
		return a.fail(err)
	}

	a.println(fmt.Sprintf("Removed item #%d", id))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.api.Stats(ctx)
	if err != nil {
		return a.fail(err)
	}

	a.println(fmt.Sprintf("Total cards: %d, unique cards: %d", s.TotalCards, s.UniqueCards))
	return nil
}

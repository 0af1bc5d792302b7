package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Search(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter card name", a.out)
	if err != nil {
		return a.fail(err)
	}

	cards, err := a.api.SearchCards(ctx, name)
	if err != nil {
		return a.fail(err)
	}

	if len(cards) == 0 {
		a.println("No cards found")
		return nil
	}
	for _, c := range cards {
		a.println(fmt.Sprintf("%-14s %s", c.ID, c.Name))
	}
	return nil
}

func (a *App) Card(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter card id", a.out)
	if err != nil {
		return a.fail(err)
	}

	card, err := a.api.GetCard(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	a.println(fmt.Sprintf("%s (%s)", card.Name, card.ID))
	if card.Set.Name != "" {
		a.println("Set:", card.Set.Name)
	}
	if card.Rarity != "" {
		a.println("Rarity:", card.Rarity)
	}
	if card.HP > 0 {
		a.println(fmt.Sprintf("HP: %d", card.HP))
	}
	if len(card.Types) > 0 {
		a.println("Types:", strings.Join(card.Types, ", "))
	}
	if url := card.ImageURL(); url != "" {
		a.println("Image:", url)
	}
	return nil
}

// Package models holds the JSON shapes the CLI exchanges with the REST API.
package models

import (
	"fmt"
	"strings"
	"time"
)

type Account struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message,omitempty"`
}

type CardBrief struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
}

type SetBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is the subset of catalog data the CLI prints.
type Card struct {
	CardBrief
	Category    string   `json:"category,omitempty"`
	Illustrator string   `json:"illustrator,omitempty"`
	Rarity      string   `json:"rarity,omitempty"`
	HP          int      `json:"hp,omitempty"`
	Types       []string `json:"types,omitempty"`
	Stage       string   `json:"stage,omitempty"`
	Set         SetBrief `json:"set"`
}

// ImageURL returns the high quality PNG for the card, or "".
func (c *CardBrief) ImageURL() string {
	if c.Image == "" {
		return ""
	}
	return c.Image + "/high.png"
}

type CollectionItem struct {
	ID          int64     `json:"id"`
	CardID      string    `json:"cardId"`
	Variant     string    `json:"variant"`
	Quantity    int       `json:"quantity"`
	Condition   *string   `json:"condition"`
	Notes       *string   `json:"notes"`
	AddedDate   time.Time `json:"addedDate"`
	UpdatedDate time.Time `json:"updatedDate"`
	CardDetails *Card     `json:"cardDetails"`
}

// Summary renders the item as a single list line.
func (i *CollectionItem) Summary() string {
	name := i.CardID
	if i.CardDetails != nil && i.CardDetails.Name != "" {
		name = fmt.Sprintf("%s (%s)", i.CardDetails.Name, i.CardID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [%s] x%d", i.ID, name, i.Variant, i.Quantity)
	if i.Condition != nil && *i.Condition != "" {
		fmt.Fprintf(&b, " %s", *i.Condition)
	}
	if i.Notes != nil && *i.Notes != "" {
		fmt.Fprintf(&b, " - %s", *i.Notes)
	}
	return b.String()
}

type Stats struct {
	TotalCards  int64 `json:"totalCards"`
	UniqueCards int64 `json:"uniqueCards"`
}

type AddCardRequest struct {
	CardID    string  `json:"cardId"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity"`
	Condition *string `json:"condition,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// UpdateItemRequest leaves nil fields unchanged on the server.
type UpdateItemRequest struct {
	Quantity  *int    `json:"quantity,omitempty"`
	Condition *string `json:"condition,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

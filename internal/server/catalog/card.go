package catalog

import "encoding/json"

// CardBrief is the summary returned by card searches.
type CardBrief struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
}

// HighQualityImageURL returns the full-size PNG, or "" when the card has no
// image.
func (c CardBrief) HighQualityImageURL() string {
	return c.ImageURL("high", "png")
}

// ThumbnailImageURL returns the small WebP preview, or "" when the card has
// no image.
func (c CardBrief) ThumbnailImageURL() string {
	return c.ImageURL("low", "webp")
}

// ImageURL builds an asset URL for quality ("low", "high") and format
// ("png", "webp", "jpg").
func (c CardBrief) ImageURL(quality, format string) string {
	if c.Image == "" {
		return ""
	}
	return c.Image + "/" + quality + "." + format
}

// Card is the full catalog record. Fields the catalog omits for a given
// category (trainer, energy) stay at their zero value.
type Card struct {
	CardBrief

	Category       string          `json:"category,omitempty"`
	Illustrator    string          `json:"illustrator,omitempty"`
	Rarity         string          `json:"rarity,omitempty"`
	Set            *SetBrief       `json:"set,omitempty"`
	Variants       *Variants       `json:"variants,omitempty"`
	DexID          []int           `json:"dexId,omitempty"`
	HP             *int            `json:"hp,omitempty"`
	Types          []string        `json:"types,omitempty"`
	EvolveFrom     string          `json:"evolveFrom,omitempty"`
	Description    string          `json:"description,omitempty"`
	Level          string          `json:"level,omitempty"`
	Stage          string          `json:"stage,omitempty"`
	Suffix         string          `json:"suffix,omitempty"`
	Item           *Item           `json:"item,omitempty"`
	Abilities      []Ability       `json:"abilities,omitempty"`
	Attacks        []Attack        `json:"attacks,omitempty"`
	Weaknesses     []Weakness      `json:"weaknesses,omitempty"`
	Resistances    []Weakness      `json:"resistances,omitempty"`
	Retreat        *int            `json:"retreat,omitempty"`
	RegulationMark string          `json:"regulationMark,omitempty"`
	Legal          *Legal          `json:"legal,omitempty"`
	Effect         string          `json:"effect,omitempty"`
	TrainerType    string          `json:"trainerType,omitempty"`
	EnergyType     string          `json:"energyType,omitempty"`
	Updated        string          `json:"updated,omitempty"`
	Pricing        json.RawMessage `json:"pricing,omitempty"`
}

type SetBrief struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Logo      string     `json:"logo,omitempty"`
	Symbol    string     `json:"symbol,omitempty"`
	CardCount *CardCount `json:"cardCount,omitempty"`
}

// HighQualityLogoURL returns the set logo PNG, or "" when absent.
func (s SetBrief) HighQualityLogoURL() string {
	if s.Logo == "" {
		return ""
	}
	return s.Logo + "/high.png"
}

// HighQualitySymbolURL returns the set symbol PNG, or "" when absent.
func (s SetBrief) HighQualitySymbolURL() string {
	if s.Symbol == "" {
		return ""
	}
	return s.Symbol + "/high.png"
}

type CardCount struct {
	Total    *int `json:"total,omitempty"`
	Official *int `json:"official,omitempty"`
}

// Variants lists the print variants a card exists in.
type Variants struct {
	Normal       bool `json:"normal"`
	Reverse      bool `json:"reverse"`
	Holo         bool `json:"holo"`
	FirstEdition bool `json:"firstEdition"`
	WPromo       bool `json:"wPromo"`
}

type Attack struct {
	Name   string   `json:"name"`
	Cost   []string `json:"cost,omitempty"`
	Effect string   `json:"effect,omitempty"`
	Damage any      `json:"damage,omitempty"`
}

type Ability struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

type Weakness struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

type Item struct {
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

type Legal struct {
	Standard bool `json:"standard"`
	Expanded bool `json:"expanded"`
}

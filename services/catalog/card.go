package catalog

import (
	"sort"
	"strings"
)

// Card is the wire shape of one catalog entry. Base and custom cards
// are folded into the same shape, so clients only tell them apart by
// rarity.
type Card struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	Description        string `json:"description"`
	Rarity             string `json:"rarity"`
	DefaultUsesPerRest int    `json:"default_uses_per_rest"`
	ImageURL           string `json:"image_url"`
	BacklashEffect     string `json:"backlash_effect"`
	Effect             string `json:"effect"`
}

// Display order: every Cantrip before every other type, ties broken by
// case-insensitive name. This is a presentation convention, recomputed
// on every load and never stored.
func sortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		pi, pj := typePriority(cards[i].Type), typePriority(cards[j].Type)
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(cards[i].Name) < strings.ToLower(cards[j].Name)
	})
}

func typePriority(cardType string) int {
	if cardType == "Cantrip" {
		return 0
	}
	return 1
}

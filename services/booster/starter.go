package booster

import (
	"Grimoire/services/catalog"
	"math/rand"
)

const starterCantripCount = 3

// Spells every fresh character is expected to own. Matched by literal
// name against the live catalog, not by id: the spreadsheet import
// regenerates ids but keeps names.
var starterSpellNames = []string{"Burning Hands", "Cure Wounds"}

// StarterCollection picks the initial unlocked card ids for a new
// account: three distinct random Cantrips (all of them when fewer
// exist) plus the fixed starter spells when the catalog has them.
func StarterCollection(rng *rand.Rand, cards []catalog.Card) []string {
	var cantrips []catalog.Card
	for _, c := range cards {
		if c.Type == "Cantrip" {
			cantrips = append(cantrips, c)
		}
	}

	ids := []string{}
	if len(cantrips) <= starterCantripCount {
		for _, c := range cantrips {
			ids = append(ids, c.ID)
		}
	} else {
		for _, i := range rng.Perm(len(cantrips))[:starterCantripCount] {
			ids = append(ids, cantrips[i].ID)
		}
	}

	for _, name := range starterSpellNames {
		for _, c := range cards {
			if c.Name == name {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids
}

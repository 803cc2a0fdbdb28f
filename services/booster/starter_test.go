package booster_test

import (
	"Grimoire/services/booster"
	"Grimoire/services/catalog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func named(id, name, cardType string) catalog.Card {
	return catalog.Card{ID: id, Name: name, Type: cardType, Rarity: "Common"}
}

func TestStarterCollectionComposition(t *testing.T) {
	cards := []catalog.Card{
		named("ct1", "Fire Bolt", "Cantrip"),
		named("ct2", "Mage Hand", "Cantrip"),
		named("ct3", "Light", "Cantrip"),
		named("ct4", "Prestidigitation", "Cantrip"),
		named("ct5", "Guidance", "Cantrip"),
		named("s1", "Burning Hands", "Evocation"),
		named("s2", "Cure Wounds", "Abjuration"),
		named("s3", "Fireball", "Evocation"),
	}

	ids := booster.StarterCollection(rand.New(rand.NewSource(7)), cards)

	assert.Len(t, ids, 5)
	assert.Contains(t, ids, "s1")
	assert.Contains(t, ids, "s2")
	assert.NotContains(t, ids, "s3")

	// Three distinct cantrips.
	seen := map[string]bool{}
	cantrips := 0
	for _, id := range ids[:3] {
		assert.False(t, seen[id], "cantrip %s picked twice", id)
		seen[id] = true
		cantrips++
	}
	assert.Equal(t, 3, cantrips)
}

func TestStarterCollectionFewCantrips(t *testing.T) {
	cards := []catalog.Card{
		named("ct1", "Fire Bolt", "Cantrip"),
		named("s2", "Cure Wounds", "Abjuration"),
	}

	ids := booster.StarterCollection(rand.New(rand.NewSource(1)), cards)

	assert.ElementsMatch(t, []string{"ct1", "s2"}, ids)
}

func TestStarterCollectionEmptyCatalog(t *testing.T) {
	ids := booster.StarterCollection(rand.New(rand.NewSource(1)), nil)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

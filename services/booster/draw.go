package booster

import (
	"Grimoire/services/catalog"
	"errors"
	"math/rand"
	"time"
)

// PackSize is the number of slots rolled per booster.
const PackSize = 5

// Relative likelihood per rarity. Custom cards roll noticeably more
// often than Legendary so DM content actually shows up in packs.
var rarityWeights = []rarityWeight{
	{"Common", 40},
	{"Uncommon", 25},
	{"Rare", 15},
	{"Legendary", 5},
	{"Custom", 15},
}

type rarityWeight struct {
	Rarity string
	Weight int
}

var ErrEmptyCatalog = errors.New("no cards available in the system")

// NewRNG returns the time-seeded source used outside tests. Each
// request gets its own because rand.Rand is not safe for concurrent
// use.
func NewRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// DrawPack rolls PackSize slots: a weighted rarity per slot, then a
// uniform pick from that rarity's pool. A slot whose rarity has no
// cards is skipped rather than rerolled, so a pack can come back short.
// The same card may be drawn more than once.
func DrawPack(rng *rand.Rand, cards []catalog.Card) ([]catalog.Card, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCatalog
	}

	byRarity := make(map[string][]catalog.Card)
	for _, c := range cards {
		byRarity[c.Rarity] = append(byRarity[c.Rarity], c)
	}

	totalWeight := 0
	for _, w := range rarityWeights {
		totalWeight += w.Weight
	}

	drawn := make([]catalog.Card, 0, PackSize)
	for slot := 0; slot < PackSize; slot++ {
		pool := byRarity[rollRarity(rng, totalWeight)]
		if len(pool) == 0 {
			continue
		}
		drawn = append(drawn, pool[rng.Intn(len(pool))])
	}
	return drawn, nil
}

func rollRarity(rng *rand.Rand, totalWeight int) string {
	roll := rng.Intn(totalWeight)
	for _, w := range rarityWeights {
		roll -= w.Weight
		if roll < 0 {
			return w.Rarity
		}
	}
	return rarityWeights[len(rarityWeights)-1].Rarity
}

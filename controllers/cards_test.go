package controllers_test

import (
	"Grimoire/services/catalog"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetAllCardsOrdering(t *testing.T) {
	router, db, _ := setupServer(t)
	seedCards(t, db)

	w, _ := doJSON(t, router, http.MethodGet, "/cards", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cards []catalog.Card
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Len(t, cards, 9)

	// Cantrips first, then everything else, each block sorted by name.
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Fire Bolt", "Guidance", "Light", "Mage Hand",
		"Burning Hands", "Cure Wounds", "Fireball", "Invisibility", "Wish",
	}, names)
}

func TestGetAllCardsIncludesCustom(t *testing.T) {
	router, db, store := setupServer(t)
	seedCards(t, db)
	createPlayer(t, db, "dm", "s3cret")

	uses := 1
	_, err := store.CreateCustomCard(catalog.CustomCardInput{
		Name:               "Arcane Sneeze",
		Type:               "Cantrip",
		Rarity:             "Custom",
		Description:        "Blows the target away",
		DefaultUsesPerRest: &uses,
	}, "dm")
	assert.NoError(t, err)

	w, _ := doJSON(t, router, http.MethodGet, "/cards", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cards []catalog.Card
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Len(t, cards, 10)
	// "Arcane Sneeze" is a Cantrip, so it sorts to the very front.
	assert.Equal(t, "Arcane Sneeze", cards[0].Name)
}

func TestCardUsed(t *testing.T) {
	router, _, _ := setupServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/card_used", gin.H{
		"name": "Fire Bolt", "type": "Cantrip", "deck_card_id": "inst-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Card 'Fire Bolt' marked as used.", body["message"])

	entry, ok := body["log_entry"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "CARD_PLAYED", entry["event_type"])
	assert.Equal(t, "Fire Bolt", entry["card_name"])
	assert.Equal(t, "Cantrip", entry["card_type"])
	assert.Equal(t, "inst-1", entry["deck_instance_id"])
	assert.Equal(t, "SUCCESS", entry["status"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestCardUsedMissingData(t *testing.T) {
	router, _, _ := setupServer(t)

	for _, payload := range []gin.H{
		{"type": "Cantrip", "deck_card_id": "inst-1"},
		{"name": "Fire Bolt", "deck_card_id": "inst-1"},
		{"name": "Fire Bolt", "type": "Cantrip"},
		{},
	} {
		w, body := doJSON(t, router, http.MethodPost, "/card_used", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required data", body["message"])
	}
}

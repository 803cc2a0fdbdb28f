package controllers

import (
	"Grimoire/middleware"
	"Grimoire/services/booster"
	"Grimoire/services/catalog"
	"Grimoire/utils"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const standardPackType = "Standard Pack"

type drawnCard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Rarity string `json:"rarity"`
}

func drawnCards(cards []catalog.Card) []drawnCard {
	out := make([]drawnCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, drawnCard{ID: c.ID, Name: c.Name, Type: c.Type, Rarity: c.Rarity})
	}
	return out
}

// @Summary Opens a standard booster pack
// @Description Rolls five rarity-weighted slots against the live catalog and adds the results to the collection
// @Tags booster
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string,pack_type=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /booster/open [post]
func OpenBooster(db *gorm.DB, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		cards, err := store.Get()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		drawn, err := booster.DrawPack(booster.NewRNG(), cards)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No cards available in the system to open a booster pack."})
			return
		}

		collection, err := player.CollectionIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, card := range drawn {
			collection = append(collection, card.ID)
		}
		if err := player.SetCollectionIDs(collection); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := utils.SavePlayerGuarded(db, player); err != nil {
			saveError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":                         fmt.Sprintf("Successfully opened a %s! You acquired %d cards.", standardPackType, len(drawn)),
			"pack_type":                       standardPackType,
			"new_cards":                       drawnCards(drawn),
			"updated_unlocked_collection_ids": collection,
		})
	}
}

// @Summary Opens the oldest DM-given booster pack
// @Description Pops the pending pack queue front, then draws like a standard booster
// @Tags booster
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string,pack_type=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /player/open_pending_booster [post]
func OpenPendingBooster(db *gorm.DB, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		packs, err := player.PendingPackTypes()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(packs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No pending booster packs to open."})
			return
		}
		packType := packs[0]
		packs = packs[1:]

		cards, err := store.Get()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		drawn, err := booster.DrawPack(booster.NewRNG(), cards)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No cards available in the system to open a booster pack."})
			return
		}

		collection, err := player.CollectionIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for _, card := range drawn {
			collection = append(collection, card.ID)
		}
		if err := player.SetCollectionIDs(collection); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := player.SetPendingPackTypes(packs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := utils.SavePlayerGuarded(db, player); err != nil {
			saveError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":                         fmt.Sprintf("Successfully opened a DM-given %s!", packType),
			"pack_type":                       packType,
			"new_cards":                       drawnCards(drawn),
			"updated_unlocked_collection_ids": collection,
			"updated_pending_booster_packs":   packs,
		})
	}
}

type acceptCardRequest struct {
	CardID string `json:"card_id"`
}

// @Summary Accepts one DM-given card
// @Description Removes one matching entry from the pending list; the card itself was already added to the collection when gifted
// @Tags booster
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string,card_name=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /player/accept_pending_card [post]
func AcceptPendingCard(db *gorm.DB, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		var req acceptCardRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CardID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing player ID, password, or card ID"})
			return
		}

		pending, err := player.PendingCardIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		idx := -1
		for i, id := range pending {
			if id == req.CardID {
				idx = i
				break
			}
		}
		if idx < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This card is not in your pending cards list."})
			return
		}
		pending = append(pending[:idx], pending[idx+1:]...)

		// The collection is untouched: the card was added when the DM
		// gifted it.
		if err := player.SetPendingCardIDs(pending); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := utils.SavePlayerGuarded(db, player); err != nil {
			saveError(c, err)
			return
		}

		cardName := "Unknown Card"
		if card, ok, err := store.FindByID(req.CardID); err == nil && ok {
			cardName = card.Name
		}
		collection, err := player.CollectionIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":                         fmt.Sprintf("Card '%s' successfully accepted.", cardName),
			"card_name":                       cardName,
			"updated_unlocked_collection_ids": collection,
			"updated_pending_cards":           pending,
		})
	}
}

// @Summary Lists the player's pending gifts
// @Tags booster
// @Accept json
// @Produce json
// @Success 200 {object} object{pending_booster_packs=[]string,pending_cards=[]string}
// @Failure 401 {object} object{error=string}
// @Router /player/pending_items [post]
func PendingItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		packs, err := player.PendingPackTypes()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pending, err := player.PendingCardIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pending_booster_packs": packs,
			"pending_cards":         pending,
		})
	}
}

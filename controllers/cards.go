package controllers

import (
	"Grimoire/services/catalog"
	"Grimoire/utils/logger"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Lists the whole card catalog
// @Description Returns every base and custom card, Cantrips first, then case-insensitive by name
// @Tags cards
// @Produce json
// @Success 200 {array} catalog.Card
// @Failure 500 {object} object{error=string}
// @Router /cards [get]
func GetAllCards(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cards, err := store.Get()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cards)
	}
}

type cardUsedRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	DeckCardID string `json:"deck_card_id"`
}

// @Summary Logs a card-usage event
// @Description Emits a structured audit record; nothing is persisted
// @Tags cards
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string,log_entry=object}
// @Failure 400 {object} object{message=string}
// @Router /card_used [post]
func CardUsed() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cardUsedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required data"})
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" ||
			strings.TrimSpace(req.DeckCardID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required data"})
			return
		}

		entry := gin.H{
			"timestamp":        time.Now().Format(time.RFC3339),
			"event_type":       "CARD_PLAYED",
			"card_name":        req.Name,
			"card_type":        req.Type,
			"deck_instance_id": req.DeckCardID,
			"status":           "SUCCESS",
		}
		logger.Infow("card used",
			"event_type", "CARD_PLAYED",
			"card_name", req.Name,
			"card_type", req.Type,
			"deck_instance_id", req.DeckCardID,
		)

		c.JSON(http.StatusOK, gin.H{
			"message":   fmt.Sprintf("Card '%s' marked as used.", req.Name),
			"log_entry": entry,
		})
	}
}

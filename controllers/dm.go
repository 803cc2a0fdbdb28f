package controllers

import (
	"Grimoire/middleware"
	"Grimoire/services/catalog"
	"Grimoire/utils"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type giveCardRequest struct {
	TargetPlayerID string `json:"target_player_id"`
	CardID         string `json:"card_id"`
}

// @Summary DM gives a specific card to a player
// @Description The card joins the target's collection immediately; the pending entry only gates a UI acknowledgment
// @Tags dm
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /dm/give_card [post]
func GiveCard(db *gorm.DB, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req giveCardRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			strings.TrimSpace(req.TargetPlayerID) == "" || strings.TrimSpace(req.CardID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing DM ID, password, target player ID, or card ID"})
			return
		}

		target, err := utils.FindPlayer(db, req.TargetPlayerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Target player '%s' not found.", req.TargetPlayerID)})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		_, found, err := store.FindByID(req.CardID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID provided."})
			return
		}

		collection, err := target.CollectionIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pending, err := target.PendingCardIDs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Owned right away, acknowledged later.
		collection = append(collection, req.CardID)
		pending = append(pending, req.CardID)

		if err := target.SetCollectionIDs(collection); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := target.SetPendingCardIDs(pending); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := utils.SavePlayerGuarded(db, target); err != nil {
			saveError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Card '%s' successfully given to player '%s'.", req.CardID, req.TargetPlayerID),
		})
	}
}

type giveBoosterRequest struct {
	TargetPlayerID string `json:"target_player_id"`
	PackType       string `json:"pack_type"`
}

// @Summary DM queues a booster pack for a player
// @Description No cards are generated here; the draw happens when the player opens the pack
// @Tags dm
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string,pack_type=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /dm/give_booster [post]
func GiveBooster(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req giveBoosterRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			strings.TrimSpace(req.TargetPlayerID) == "" || strings.TrimSpace(req.PackType) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing DM ID, password, target player ID, or pack type"})
			return
		}

		target, err := utils.FindPlayer(db, req.TargetPlayerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Target player '%s' not found.", req.TargetPlayerID)})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		packs, err := target.PendingPackTypes()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		packs = append(packs, req.PackType)

		if err := target.SetPendingPackTypes(packs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := utils.SavePlayerGuarded(db, target); err != nil {
			saveError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":                       fmt.Sprintf("Successfully marked a '%s' as pending for player '%s'.", req.PackType, req.TargetPlayerID),
			"pack_type":                     req.PackType,
			"updated_pending_booster_packs": packs,
		})
	}
}

type createCustomCardRequest struct {
	CardData *catalog.CustomCardInput `json:"card_data"`
}

// @Summary DM creates a custom card
// @Description The card becomes visible to every subsequent catalog read
// @Tags dm
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string,new_card_id=string,new_card_details=catalog.Card}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /dm/create_custom_card [post]
func CreateCustomCard(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		dm := middleware.CurrentPlayer(c)

		var req createCustomCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		if req.CardData == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card data is required"})
			return
		}

		card, err := store.CreateCustomCard(*req.CardData, dm.PlayerID)
		if err != nil {
			if errors.Is(err, catalog.ErrMissingCardFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required card fields"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create custom card: %v", err)})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":          fmt.Sprintf("Custom card '%s' created successfully!", card.Name),
			"new_card_id":      card.ID,
			"new_card_details": card,
		})
	}
}

package controllers

import (
	"Grimoire/middleware"
	models "Grimoire/models/postgres"
	"Grimoire/services/booster"
	"Grimoire/services/catalog"
	"Grimoire/utils"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type createAccountRequest struct {
	PlayerID string `json:"player_id"`
	Password string `json:"password"`
}

// @Summary Creates a player account
// @Description New accounts start at level 1 with a starter collection drawn from the live catalog
// @Tags account
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /account/create [post]
func CreateAccount(db *gorm.DB, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		if strings.TrimSpace(req.PlayerID) == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing player ID or password"})
			return
		}

		if _, err := utils.FindPlayer(db, req.PlayerID); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Player ID already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		// Starter allocation reads the catalog through the store, not
		// through a second HTTP request. An unavailable catalog means
		// an empty starter collection, not a failed signup.
		cards, err := store.Get()
		if err != nil {
			log.Printf("Error loading catalog during account creation: %v", err)
			cards = nil
		}
		starterIDs := booster.StarterCollection(booster.NewRNG(), cards)

		player := models.Player{
			PlayerID:       req.PlayerID,
			PasswordHash:   string(hash),
			CharacterLevel: 1,
		}
		if err := player.SetDeckInstances(nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := player.SetCollectionIDs(starterIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		player.SetPendingPackTypes(nil)
		player.SetPendingCardIDs(nil)

		if err := db.Create(&player).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Player ID already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Player account created successfully"})
	}
}

// playerState is the account snapshot shared by login and the DM's
// session-players listing. The password hash never leaves the server.
func playerState(p *models.Player) (gin.H, error) {
	deck, err := p.DeckInstances()
	if err != nil {
		return nil, err
	}
	collection, err := p.CollectionIDs()
	if err != nil {
		return nil, err
	}
	packs, err := p.PendingPackTypes()
	if err != nil {
		return nil, err
	}
	pending, err := p.PendingCardIDs()
	if err != nil {
		return nil, err
	}
	return gin.H{
		"active_deck_instances":   deck,
		"unlocked_collection_ids": collection,
		"character_level":         p.CharacterLevel,
		"wis_mod":                 p.WisMod,
		"int_mod":                 p.IntMod,
		"cha_mod":                 p.ChaMod,
		"pending_booster_packs":   packs,
		"pending_cards":           pending,
	}, nil
}

// @Summary Authenticates a player and returns the account snapshot
// @Tags account
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /account/login [post]
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)
		state, err := playerState(player)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		state["message"] = "Login successful"
		c.JSON(http.StatusOK, state)
	}
}

type saveDeckRequest struct {
	ActiveDeckInstances   []models.DeckCard `json:"active_deck_instances"`
	UnlockedCollectionIDs []string          `json:"unlocked_collection_ids"`
	CharacterLevel        *int              `json:"character_level"`
	WisMod                *int              `json:"wis_mod"`
	IntMod                *int              `json:"int_mod"`
	ChaMod                *int              `json:"cha_mod"`
}

// @Summary Saves the player's deck, collection and stats
// @Description Pending gift lists are untouched; only the dedicated gift endpoints mutate them
// @Tags account
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /account/save [post]
func SaveDeck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		var req saveDeckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		if req.ActiveDeckInstances == nil || req.UnlockedCollectionIDs == nil ||
			req.CharacterLevel == nil || req.WisMod == nil || req.IntMod == nil || req.ChaMod == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required data"})
			return
		}

		player.CharacterLevel = *req.CharacterLevel
		player.WisMod = *req.WisMod
		player.IntMod = *req.IntMod
		player.ChaMod = *req.ChaMod
		if err := player.SetDeckInstances(req.ActiveDeckInstances); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := player.SetCollectionIDs(req.UnlockedCollectionIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := utils.SavePlayerGuarded(db, player); err != nil {
			saveError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deck and stats saved successfully"})
	}
}

// saveError maps a guarded-save failure onto the response.
func saveError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrVersionConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "Player was updated by another request, retry"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type deckSizeRequest struct {
	CharacterLevel *int `json:"character_level"`
	WisMod         int  `json:"wis_mod"`
	IntMod         int  `json:"int_mod"`
	ChaMod         int  `json:"cha_mod"`
}

// @Summary Calculates the maximum deck size
// @Description Max deck size is the straight sum of character level and the three casting modifiers
// @Tags account
// @Accept json
// @Produce json
// @Success 200 {object} object{max_deck_size=integer}
// @Router /deck/calculate_size [post]
func CalculateDeckSize() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deckSizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		level := 1
		if req.CharacterLevel != nil {
			level = *req.CharacterLevel
		}
		c.JSON(http.StatusOK, gin.H{"max_deck_size": level + req.WisMod + req.IntMod + req.ChaMod})
	}
}

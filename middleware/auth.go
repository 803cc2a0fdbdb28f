package middleware

import (
	models "Grimoire/models/postgres"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const playerKey = "authenticated_player"

type credentials struct {
	PlayerID   string `json:"player_id"`
	DMPlayerID string `json:"dm_player_id"`
	Password   string `json:"password"`
}

// PlayerAuth re-verifies credentials on every call. There is no session
// token anywhere: each request carries player_id (dm_player_id on the
// DM gift endpoints) and the plain password, and the hash is compared
// here before any handler runs.
func PlayerAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
			return
		}
		// Handlers still bind the body themselves, so put it back.
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var creds credentials
		if err := json.Unmarshal(raw, &creds); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}

		playerID := creds.PlayerID
		if playerID == "" {
			playerID = creds.DMPlayerID
		}
		if strings.TrimSpace(playerID) == "" || strings.TrimSpace(creds.Password) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing player ID or password"})
			return
		}

		var player models.Player
		if err := db.Where("player_id = ?", playerID).First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Player ID not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(creds.Password)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
			return
		}

		c.Set(playerKey, &player)
		c.Next()
	}
}

// CurrentPlayer returns the account PlayerAuth stashed for this
// request.
func CurrentPlayer(c *gin.Context) *models.Player {
	v, ok := c.Get(playerKey)
	if !ok {
		return nil
	}
	return v.(*models.Player)
}

package controllers

import (
	"Grimoire/middleware"
	models "Grimoire/models/postgres"
	"Grimoire/utils"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createSessionRequest struct {
	SessionName string `json:"session_name"`
}

// @Summary Creates a new game session
// @Description Generates a session id and a 6-character join code; a code collision is a conflict, not a retry
// @Tags session
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string,session_id=string,session_code=string,session_name=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /dm/create_session [post]
func CreateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dm := middleware.CurrentPlayer(c)

		var req createSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		name := req.SessionName
		if strings.TrimSpace(name) == "" {
			name = "Untitled Session"
		}

		session := models.GameSession{
			DMPlayerID:  dm.PlayerID,
			SessionName: name,
		}
		if err := db.Create(&session).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Failed to create session, please try again (possible code collision)."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":      "Game session created successfully",
			"session_id":   session.SessionID,
			"session_code": session.SessionCode,
			"session_name": session.SessionName,
		})
	}
}

type joinSessionRequest struct {
	SessionCode string `json:"session_code"`
}

// @Summary Joins a game session by code
// @Description Idempotent: rejoining an already-joined session reports success
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /player/join_session [post]
func JoinSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		var req joinSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SessionCode) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player ID, password, and session code are required"})
			return
		}

		var session models.GameSession
		if err := db.Where("session_code = ?", req.SessionCode).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found with that code"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		if session.DMPlayerID == player.PlayerID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A DM cannot join their own session as a player."})
			return
		}

		var membership models.SessionMembership
		err := db.Where("player_id = ? AND session_id = ?", player.PlayerID, session.SessionID).
			First(&membership).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "You are already a member of this session."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		newMembership := models.SessionMembership{
			PlayerID:  player.PlayerID,
			SessionID: session.SessionID,
		}
		if err := db.Create(&newMembership).Error; err != nil {
			// A concurrent join of the same session is still a join.
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusOK, gin.H{"message": "You are already a member of this session."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      fmt.Sprintf("Successfully joined session '%s' (Code: %s)", session.SessionName, session.SessionCode),
			"session_id":   session.SessionID,
			"session_name": session.SessionName,
			"dm_player_id": session.DMPlayerID,
		})
	}
}

// @Summary Lists the sessions the requesting DM owns
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} object{sessions=[]object}
// @Failure 401 {object} object{error=string}
// @Router /dm/my_sessions [post]
func MySessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dm := middleware.CurrentPlayer(c)

		var sessions []models.GameSession
		if err := db.Where("dm_player_id = ?", dm.PlayerID).Find(&sessions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, gin.H{
				"session_id":   s.SessionID,
				"session_code": s.SessionCode,
				"session_name": s.SessionName,
				"created_at":   s.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"sessions": out})
	}
}

// @Summary Lists the players in one of the DM's sessions
// @Description 404 when the session does not exist, 403 when it belongs to another DM
// @Tags session
// @Accept json
// @Produce json
// @Param session_id path string true "Session id"
// @Success 200 {object} object{session_id=string,players=[]object}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /dm/sessions/{session_id}/players [post]
func SessionPlayers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dm := middleware.CurrentPlayer(c)
		sessionID := c.Param("session_id")

		var session models.GameSession
		if err := db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		if session.DMPlayerID != dm.PlayerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: you are not the DM of this session."})
			return
		}

		var memberships []models.SessionMembership
		if err := db.Where("session_id = ?", sessionID).Find(&memberships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		players := make([]gin.H, 0, len(memberships))
		for _, m := range memberships {
			member, err := utils.FindPlayer(db, m.PlayerID)
			if err != nil {
				continue
			}
			state, err := playerState(member)
			if err != nil {
				continue
			}
			players = append(players, gin.H{"player_id": m.PlayerID, "data": state})
		}

		c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "players": players})
	}
}

package middleware_test

import (
	"Grimoire/middleware"
	models "Grimoire/models/postgres"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func authTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Player{}))

	router := gin.New()
	router.POST("/protected", middleware.PlayerAuth(db), func(c *gin.Context) {
		player := middleware.CurrentPlayer(c)

		// Prove the body survived the middleware's read.
		var echo map[string]interface{}
		assert.NoError(t, c.ShouldBindJSON(&echo))

		c.JSON(http.StatusOK, gin.H{
			"player_id": player.PlayerID,
			"extra":     echo["extra"],
		})
	})
	return router, db
}

func seedAccount(t *testing.T, db *gorm.DB, playerID, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&models.Player{PlayerID: playerID, PasswordHash: string(hash)}).Error)
}

func post(t *testing.T, router *gin.Engine, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/protected", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlayerAuthSuccessRestoresBody(t *testing.T) {
	router, db := authTestRouter(t)
	seedAccount(t, db, "alice", "pw")

	w := post(t, router, gin.H{"player_id": "alice", "password": "pw", "extra": "payload"})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["player_id"])
	assert.Equal(t, "payload", body["extra"])
}

func TestPlayerAuthAcceptsDMPlayerID(t *testing.T) {
	router, db := authTestRouter(t)
	seedAccount(t, db, "dm", "pw")

	w := post(t, router, gin.H{"dm_player_id": "dm", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlayerAuthPrefersPlayerID(t *testing.T) {
	router, db := authTestRouter(t)
	seedAccount(t, db, "alice", "pw")
	seedAccount(t, db, "dm", "other")

	// When both ids are present, player_id wins.
	w := post(t, router, gin.H{"player_id": "alice", "dm_player_id": "dm", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["player_id"])
}

func TestPlayerAuthWrongPassword(t *testing.T) {
	router, db := authTestRouter(t)
	seedAccount(t, db, "alice", "pw")

	w := post(t, router, gin.H{"player_id": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlayerAuthUnknownPlayer(t *testing.T) {
	router, _ := authTestRouter(t)

	w := post(t, router, gin.H{"player_id": "ghost", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlayerAuthMissingCredentials(t *testing.T) {
	router, db := authTestRouter(t)
	seedAccount(t, db, "alice", "pw")

	for _, payload := range []gin.H{
		{"password": "pw"},
		{"player_id": "alice"},
		{},
	} {
		w := post(t, router, payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestPlayerAuthInvalidJSON(t *testing.T) {
	router, _ := authTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/protected", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

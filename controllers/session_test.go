package controllers_test

import (
	models "Grimoire/models/postgres"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func createSession(t *testing.T, router *gin.Engine, dmID, password, name string) (sessionID, sessionCode string) {
	t.Helper()
	w, body := doJSON(t, router, http.MethodPost, "/dm/create_session", gin.H{
		"dm_player_id": dmID, "password": password, "session_name": name,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	return body["session_id"].(string), body["session_code"].(string)
}

func TestCreateSession(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")

	w, body := doJSON(t, router, http.MethodPost, "/dm/create_session", gin.H{
		"dm_player_id": "dm", "password": "s3cret", "session_name": "Friday Night",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Game session created successfully", body["message"])
	assert.Equal(t, "Friday Night", body["session_name"])
	assert.NotEmpty(t, body["session_id"])
	assert.Regexp(t, `^[A-Z0-9]{6}$`, body["session_code"])
}

func TestCreateSessionDefaultName(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")

	w, body := doJSON(t, router, http.MethodPost, "/dm/create_session", gin.H{
		"dm_player_id": "dm", "password": "s3cret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Untitled Session", body["session_name"])
}

func TestJoinSession(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")
	createPlayer(t, db, "alice", "pw")
	sessionID, code := createSession(t, router, "dm", "s3cret", "Friday Night")

	w, body := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "alice", "password": "pw", "session_code": code,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully joined session 'Friday Night' (Code: "+code+")", body["message"])
	assert.Equal(t, sessionID, body["session_id"])
	assert.Equal(t, "dm", body["dm_player_id"])

	var count int64
	assert.NoError(t, db.Model(&models.SessionMembership{}).
		Where("session_id = ?", sessionID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestJoinSessionIdempotent(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")
	createPlayer(t, db, "alice", "pw")
	sessionID, code := createSession(t, router, "dm", "s3cret", "Friday Night")

	w, _ := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "alice", "password": "pw", "session_code": code,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "alice", "password": "pw", "session_code": code,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You are already a member of this session.", body["message"])

	var count int64
	assert.NoError(t, db.Model(&models.SessionMembership{}).
		Where("session_id = ?", sessionID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestJoinSessionDMCannotJoinOwn(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")
	_, code := createSession(t, router, "dm", "s3cret", "Friday Night")

	w, body := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "dm", "password": "s3cret", "session_code": code,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A DM cannot join their own session as a player.", body["error"])
}

func TestJoinSessionUnknownCode(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "alice", "pw")

	w, body := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "alice", "password": "pw", "session_code": "NOPE99",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found with that code", body["error"])
}

func TestJoinSessionMissingCode(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "alice", "pw")

	w, body := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "alice", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Player ID, password, and session code are required", body["error"])
}

func TestMySessions(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")
	createPlayer(t, db, "other_dm", "pw")
	createSession(t, router, "dm", "s3cret", "Friday Night")
	createSession(t, router, "dm", "s3cret", "Saturday Oneshot")
	createSession(t, router, "other_dm", "pw", "Not Mine")

	w, body := doJSON(t, router, http.MethodPost, "/dm/my_sessions", gin.H{
		"dm_player_id": "dm", "password": "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	sessions, ok := body["sessions"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, sessions, 2)
	names := map[string]bool{}
	for _, s := range sessions {
		entry := s.(map[string]interface{})
		names[entry["session_name"].(string)] = true
	}
	assert.True(t, names["Friday Night"])
	assert.True(t, names["Saturday Oneshot"])
}

func TestSessionPlayers(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")
	alice := createPlayer(t, db, "alice", "pw")
	assert.NoError(t, alice.SetCollectionIDs([]string{"ct_firebolt"}))
	assert.NoError(t, db.Save(alice).Error)
	sessionID, code := createSession(t, router, "dm", "s3cret", "Friday Night")

	w, _ := doJSON(t, router, http.MethodPost, "/player/join_session", gin.H{
		"player_id": "alice", "password": "pw", "session_code": code,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(t, router, http.MethodPost, "/dm/sessions/"+sessionID+"/players", gin.H{
		"dm_player_id": "dm", "password": "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionID, body["session_id"])

	players, ok := body["players"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, players, 1)

	entry := players[0].(map[string]interface{})
	assert.Equal(t, "alice", entry["player_id"])
	data := entry["data"].(map[string]interface{})
	assert.Equal(t, []string{"ct_firebolt"}, stringSlice(t, data["unlocked_collection_ids"]))
	assert.NotContains(t, data, "password_hash")
}

func TestSessionPlayersWrongDM(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")
	createPlayer(t, db, "other_dm", "pw")
	sessionID, _ := createSession(t, router, "dm", "s3cret", "Friday Night")

	w, body := doJSON(t, router, http.MethodPost, "/dm/sessions/"+sessionID+"/players", gin.H{
		"dm_player_id": "other_dm", "password": "pw",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized: you are not the DM of this session.", body["error"])
}

func TestSessionPlayersUnknownSession(t *testing.T) {
	router, db, _ := setupServer(t)
	createPlayer(t, db, "dm", "s3cret")

	w, body := doJSON(t, router, http.MethodPost, "/dm/sessions/no-such-session/players", gin.H{
		"dm_player_id": "dm", "password": "s3cret",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", body["error"])
}

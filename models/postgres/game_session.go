package postgres

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'GameSession' is a DM-hosted table. Players join through the short
 * human-readable code, never through the raw session id. It contains
 * references to Player and SessionMembership
 */
type GameSession struct {
	SessionID   string    `gorm:"primaryKey;size:64;not null"`
	DMPlayerID  string    `gorm:"size:255;not null;index:idx_game_sessions_dm"`
	SessionCode string    `gorm:"size:6;uniqueIndex;not null"`
	SessionName string    `gorm:"size:100"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	DM          Player              `gorm:"foreignKey:DMPlayerID;constraint:OnDelete:CASCADE"`
	Memberships []SessionMembership `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Codes are read out loud and typed at the table, so no lowercase.
const sessionCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateSessionCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = sessionCodeCharset[rand.Intn(len(sessionCodeCharset))]
	}
	return string(b)
}

// No uniqueness retry here: a code collision hits the unique index and
// surfaces to the caller as a conflict to retry.
func (s *GameSession) BeforeCreate(tx *gorm.DB) error {
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	if s.SessionCode == "" {
		s.SessionCode = generateSessionCode(6)
	}
	return nil
}

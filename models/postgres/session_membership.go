package postgres

import (
	"time"
)

/*
 * 'SessionMembership' links a player to a game session. It contains
 * references to Player and GameSession
 */
type SessionMembership struct {
	// NOTE: composite primary key definition
	PlayerID  string    `gorm:"primaryKey;size:255;not null"`
	SessionID string    `gorm:"primaryKey;size:64;not null;index"`
	JoinedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the player's account and the session
	Player  Player      `gorm:"foreignKey:PlayerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Session GameSession `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

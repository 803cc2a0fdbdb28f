package postgres

import (
	"time"
)

/*
 * 'Card' is one base spell card imported from the master spreadsheet.
 * Ids are the stable content hashes assigned at import time, so the
 * import can run again without renumbering anything.
 */
type Card struct {
	ID                 string `gorm:"primaryKey;size:64;not null"`
	Name               string `gorm:"size:100;not null"`
	Type               string `gorm:"size:50;not null"`
	Description        string `gorm:"size:500"`
	Rarity             string `gorm:"size:50"`
	DefaultUsesPerRest int    `gorm:"default:0"`
	ImageFilename      string `gorm:"size:100"`
	BacklashEffect     string `gorm:"size:500"`
	Effect             string `gorm:"size:500"`
}

/*
 * 'CustomCard' is a DM-authored card. It lives in its own table so a
 * spreadsheet re-import can rebuild the cards table without touching
 * DM content. It contains a reference to Player
 */
type CustomCard struct {
	ID                 string    `gorm:"primaryKey;size:64;not null"`
	Name               string    `gorm:"size:100;not null"`
	Type               string    `gorm:"size:50;not null"`
	Description        string    `gorm:"size:500"`
	Rarity             string    `gorm:"size:50"`
	DefaultUsesPerRest int       `gorm:"default:0"`
	ImageURL           string    `gorm:"size:500"`
	BacklashEffect     string    `gorm:"size:500"`
	Effect             string    `gorm:"size:500"`
	CreatedByDM        string    `gorm:"size:255;not null;index:idx_custom_cards_dm"`
	CreatedAt          time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the owning DM's account
	Creator Player `gorm:"foreignKey:CreatedByDM;constraint:OnDelete:CASCADE"`
}

package utils

import (
	models "Grimoire/models/postgres"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrVersionConflict means another request saved this player between
// our read and our write.
var ErrVersionConflict = errors.New("player record changed concurrently")

// FindPlayer fetches one account row by id.
func FindPlayer(db *gorm.DB, playerID string) (*models.Player, error) {
	var player models.Player
	if err := db.Where("player_id = ?", playerID).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// SavePlayerGuarded writes back a read-modify-write update. The version
// counter makes the write conditional: if the row changed since it was
// read, no row matches and the caller gets ErrVersionConflict instead
// of silently losing one of the two updates. The password hash is never
// touched here.
func SavePlayerGuarded(db *gorm.DB, player *models.Player) error {
	res := db.Model(&models.Player{}).
		Where("player_id = ? AND version = ?", player.PlayerID, player.Version).
		Updates(map[string]interface{}{
			"character_level":       player.CharacterLevel,
			"wis_mod":               player.WisMod,
			"int_mod":               player.IntMod,
			"cha_mod":               player.ChaMod,
			"active_deck":           player.ActiveDeck,
			"unlocked_collection":   player.UnlockedCollection,
			"pending_booster_packs": player.PendingBoosterPacks,
			"pending_cards":         player.PendingCards,
			"version":               player.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	player.Version++
	return nil
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// GORM only translates this for some drivers, so fall back to matching
// the message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed")
}

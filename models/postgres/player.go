package postgres

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DeckCard is one slot in a player's active deck. The same card id may
// appear in several slots; each one carries its own deck_card_id so the
// frontend can tell the copies apart.
type DeckCard struct {
	DeckCardID string `json:"deck_card_id"`
	CardID     string `json:"card_id"`
}

/*
 * 'Player' holds the whole account record: credentials, character
 * stats, the active deck, the unlocked collection and the pending gift
 * lists. Deck, collection and pending lists are jsonb arrays, mirroring
 * how the frontend ships them. Version guards read-modify-write updates
 * between concurrent requests for the same player.
 */
type Player struct {
	PlayerID            string         `gorm:"primaryKey;size:255;not null"`
	PasswordHash        string         `gorm:"size:255;not null"`
	CharacterLevel      int            `gorm:"default:1"`
	WisMod              int            `gorm:"default:0"`
	IntMod              int            `gorm:"default:0"`
	ChaMod              int            `gorm:"default:0"`
	ActiveDeck          datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	UnlockedCollection  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	PendingBoosterPacks datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	PendingCards        datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Version             int64          `gorm:"default:0"`
	CreatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Sessions    []GameSession       `gorm:"foreignKey:DMPlayerID"`
	Memberships []SessionMembership `gorm:"foreignKey:PlayerID"`
	CustomCards []CustomCard        `gorm:"foreignKey:CreatedByDM"`
}

// DeckInstances decodes the active deck column.
func (p *Player) DeckInstances() ([]DeckCard, error) {
	deck := []DeckCard{}
	if len(p.ActiveDeck) == 0 {
		return deck, nil
	}
	err := json.Unmarshal(p.ActiveDeck, &deck)
	return deck, err
}

// SetDeckInstances encodes the active deck column.
func (p *Player) SetDeckInstances(deck []DeckCard) error {
	if deck == nil {
		deck = []DeckCard{}
	}
	raw, err := json.Marshal(deck)
	if err != nil {
		return err
	}
	p.ActiveDeck = datatypes.JSON(raw)
	return nil
}

// CollectionIDs decodes the unlocked collection. Duplicate ids are
// meaningful (multiple copies of the same card) and are kept.
func (p *Player) CollectionIDs() ([]string, error) {
	return decodeIDList(p.UnlockedCollection)
}

func (p *Player) SetCollectionIDs(ids []string) error {
	raw, err := encodeIDList(ids)
	if err != nil {
		return err
	}
	p.UnlockedCollection = raw
	return nil
}

// PendingPackTypes decodes the FIFO queue of DM-given pack-type labels.
func (p *Player) PendingPackTypes() ([]string, error) {
	return decodeIDList(p.PendingBoosterPacks)
}

func (p *Player) SetPendingPackTypes(packs []string) error {
	raw, err := encodeIDList(packs)
	if err != nil {
		return err
	}
	p.PendingBoosterPacks = raw
	return nil
}

// PendingCardIDs decodes the card ids awaiting player acknowledgment.
func (p *Player) PendingCardIDs() ([]string, error) {
	return decodeIDList(p.PendingCards)
}

func (p *Player) SetPendingCardIDs(ids []string) error {
	raw, err := encodeIDList(ids)
	if err != nil {
		return err
	}
	p.PendingCards = raw
	return nil
}

func decodeIDList(raw datatypes.JSON) ([]string, error) {
	list := []string{}
	if len(raw) == 0 {
		return list, nil
	}
	err := json.Unmarshal(raw, &list)
	return list, err
}

func encodeIDList(list []string) (datatypes.JSON, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

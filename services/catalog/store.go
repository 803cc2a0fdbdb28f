package catalog

import (
	models "Grimoire/models/postgres"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMissingCardFields is returned when a custom card lacks one of the
// required fields.
var ErrMissingCardFields = errors.New("missing required card fields")

// Store owns the combined base+custom card catalog and its cache.
type Store struct {
	db    *gorm.DB
	cache Cache
}

func NewStore(db *gorm.DB, cache Cache) *Store {
	return &Store{db: db, cache: cache}
}

// Get returns the merged catalog in display order, serving from the
// cache when it is warm.
func (s *Store) Get() ([]Card, error) {
	if cards, ok := s.cache.Get(); ok {
		return cards, nil
	}

	var base []models.Card
	if err := s.db.Find(&base).Error; err != nil {
		return nil, fmt.Errorf("fetching base cards: %w", err)
	}
	var custom []models.CustomCard
	if err := s.db.Find(&custom).Error; err != nil {
		return nil, fmt.Errorf("fetching custom cards: %w", err)
	}

	cards := make([]Card, 0, len(base)+len(custom))
	for _, c := range base {
		cards = append(cards, Card{
			ID:                 c.ID,
			Name:               c.Name,
			Type:               c.Type,
			Description:        c.Description,
			Rarity:             c.Rarity,
			DefaultUsesPerRest: c.DefaultUsesPerRest,
			ImageURL:           c.ImageFilename,
			BacklashEffect:     c.BacklashEffect,
			Effect:             c.Effect,
		})
	}
	for _, c := range custom {
		cards = append(cards, Card{
			ID:                 c.ID,
			Name:               c.Name,
			Type:               c.Type,
			Description:        c.Description,
			Rarity:             c.Rarity,
			DefaultUsesPerRest: c.DefaultUsesPerRest,
			ImageURL:           c.ImageURL,
			BacklashEffect:     c.BacklashEffect,
			Effect:             c.Effect,
		})
	}

	sortCards(cards)
	s.cache.Set(cards)
	return cards, nil
}

// FindByID looks a card up in the merged catalog.
func (s *Store) FindByID(id string) (Card, bool, error) {
	cards, err := s.Get()
	if err != nil {
		return Card{}, false, err
	}
	for _, c := range cards {
		if c.ID == id {
			return c, true, nil
		}
	}
	return Card{}, false, nil
}

// Invalidate drops the cached catalog; the next Get reloads from the
// database.
func (s *Store) Invalidate() {
	s.cache.Invalidate()
}

// CustomCardInput carries the DM-supplied fields for a new custom card.
// DefaultUsesPerRest is a pointer so a missing field is told apart from
// an explicit zero.
type CustomCardInput struct {
	Name               string `json:"name"`
	Type               string `json:"type"`
	Rarity             string `json:"rarity"`
	Description        string `json:"description"`
	DefaultUsesPerRest *int   `json:"default_uses_per_rest"`
	Effect             string `json:"effect"`
	BacklashEffect     string `json:"backlash_effect"`
	ImageURL           string `json:"image_url"`
}

// CreateCustomCard validates, persists and returns a new DM-authored
// card, then invalidates the cache so the next read sees it.
func (s *Store) CreateCustomCard(input CustomCardInput, dmPlayerID string) (Card, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Type) == "" ||
		strings.TrimSpace(input.Rarity) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		input.DefaultUsesPerRest == nil {
		return Card{}, ErrMissingCardFields
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = placeholderImageURL(input.Name)
	}

	row := models.CustomCard{
		ID:                 "custom_" + uuid.NewString(),
		Name:               input.Name,
		Type:               input.Type,
		Description:        input.Description,
		Rarity:             input.Rarity,
		DefaultUsesPerRest: *input.DefaultUsesPerRest,
		ImageURL:           imageURL,
		BacklashEffect:     input.BacklashEffect,
		Effect:             input.Effect,
		CreatedByDM:        dmPlayerID,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return Card{}, fmt.Errorf("creating custom card: %w", err)
	}

	// Catalog changed, the next read has to see the new card.
	s.cache.Invalidate()

	return Card{
		ID:                 row.ID,
		Name:               row.Name,
		Type:               row.Type,
		Description:        row.Description,
		Rarity:             row.Rarity,
		DefaultUsesPerRest: row.DefaultUsesPerRest,
		ImageURL:           row.ImageURL,
		BacklashEffect:     row.BacklashEffect,
		Effect:             row.Effect,
	}, nil
}

// placeholderImageURL mirrors the placehold.co fallback the frontend
// expects for art-less custom cards.
func placeholderImageURL(name string) string {
	text := strings.SplitN(name, ".", 2)[0]
	text = strings.ReplaceAll(text, " ", "%20")
	return "https://placehold.co/100x150/a8dadc/ffffff?text=" + text
}

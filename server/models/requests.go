package models

import (
	"time"

	dbmodels "github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/ellavondegurechaff/deckvault/deckvault/database/repositories"
)

const dateLayout = "2006-01-02"

// CollectionCreateRequest is the payload for creating a collection.
type CollectionCreateRequest struct {
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// Validate checks shape and types; the parsed model is returned on success.
func (r *CollectionCreateRequest) Validate() (*dbmodels.Collection, map[string]string) {
	details := make(map[string]string)
	if r.Name == "" {
		details["name"] = "name is required"
	}
	release, err := time.Parse(dateLayout, r.ReleaseDate)
	if err != nil {
		details["release_date"] = "release_date must be a YYYY-MM-DD date"
	}
	if len(details) > 0 {
		return nil, details
	}
	return &dbmodels.Collection{Name: r.Name, ReleaseDate: release}, nil
}

// CollectionUpdateRequest carries optional fields; absent fields stay untouched.
type CollectionUpdateRequest struct {
	Name        *string `json:"name"`
	ReleaseDate *string `json:"release_date"`
}

func (r *CollectionUpdateRequest) Validate() (repositories.CollectionUpdate, map[string]string) {
	details := make(map[string]string)
	update := repositories.CollectionUpdate{Name: r.Name}

	if r.Name != nil && *r.Name == "" {
		details["name"] = "name cannot be empty"
	}
	if r.ReleaseDate != nil {
		release, err := time.Parse(dateLayout, *r.ReleaseDate)
		if err != nil {
			details["release_date"] = "release_date must be a YYYY-MM-DD date"
		} else {
			update.ReleaseDate = &release
		}
	}
	if len(details) > 0 {
		return repositories.CollectionUpdate{}, details
	}
	return update, nil
}

// CardCreateRequest is the payload for creating a card.
type CardCreateRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Rarity       string `json:"rarity"`
	Text         string `json:"text"`
	CollectionID int64  `json:"collection_id"`
}

func (r *CardCreateRequest) Validate() (*dbmodels.Card, map[string]string) {
	details := make(map[string]string)
	if r.Name == "" {
		details["name"] = "name is required"
	}
	cardType, err := dbmodels.ParseCardType(r.Type)
	if err != nil {
		details["type"] = err.Error()
	}
	rarity, err := dbmodels.ParseCardRarity(r.Rarity)
	if err != nil {
		details["rarity"] = err.Error()
	}
	if r.CollectionID <= 0 {
		details["collection_id"] = "collection_id is required"
	}
	if len(details) > 0 {
		return nil, details
	}
	return &dbmodels.Card{
		Name:         r.Name,
		Type:         cardType,
		Rarity:       rarity,
		Text:         r.Text,
		CollectionID: r.CollectionID,
	}, nil
}

// CardUpdateRequest carries optional fields; absent fields stay untouched.
type CardUpdateRequest struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	Rarity       *string `json:"rarity"`
	Text         *string `json:"text"`
	CollectionID *int64  `json:"collection_id"`
}

func (r *CardUpdateRequest) Validate() (repositories.CardUpdate, map[string]string) {
	details := make(map[string]string)
	update := repositories.CardUpdate{
		Name:         r.Name,
		Text:         r.Text,
		CollectionID: r.CollectionID,
	}

	if r.Name != nil && *r.Name == "" {
		details["name"] = "name cannot be empty"
	}
	if r.Type != nil {
		cardType, err := dbmodels.ParseCardType(*r.Type)
		if err != nil {
			details["type"] = err.Error()
		} else {
			update.Type = &cardType
		}
	}
	if r.Rarity != nil {
		rarity, err := dbmodels.ParseCardRarity(*r.Rarity)
		if err != nil {
			details["rarity"] = err.Error()
		} else {
			update.Rarity = &rarity
		}
	}
	if r.CollectionID != nil && *r.CollectionID <= 0 {
		details["collection_id"] = "collection_id must be positive"
	}
	if len(details) > 0 {
		return repositories.CardUpdate{}, details
	}
	return update, nil
}

// UserCreateRequest is the payload for registering a user.
type UserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *UserCreateRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.Name == "" {
		details["name"] = "name is required"
	}
	if r.Email == "" {
		details["email"] = "email is required"
	}
	if r.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) > 0 {
		return details
	}
	return nil
}

// UserUpdateRequest carries optional fields; absent fields stay untouched.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *UserUpdateRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.Name != nil && *r.Name == "" {
		details["name"] = "name cannot be empty"
	}
	if r.Email != nil && *r.Email == "" {
		details["email"] = "email cannot be empty"
	}
	if r.Password != nil && *r.Password == "" {
		details["password"] = "password cannot be empty"
	}
	if len(details) > 0 {
		return details
	}
	return nil
}

// DeckCreateRequest is the payload for creating a deck.
type DeckCreateRequest struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	UserID int64  `json:"user_id"`
}

func (r *DeckCreateRequest) Validate() (*dbmodels.Deck, map[string]string) {
	details := make(map[string]string)
	if r.Name == "" {
		details["name"] = "name is required"
	}
	format, err := dbmodels.ParseDeckFormat(r.Format)
	if err != nil {
		details["format"] = err.Error()
	}
	if r.UserID <= 0 {
		details["user_id"] = "user_id is required"
	}
	if len(details) > 0 {
		return nil, details
	}
	return &dbmodels.Deck{Name: r.Name, Format: format, UserID: r.UserID}, nil
}

// DeckUpdateRequest carries optional fields; absent fields stay untouched.
type DeckUpdateRequest struct {
	Name   *string `json:"name"`
	Format *string `json:"format"`
}

func (r *DeckUpdateRequest) Validate() (repositories.DeckUpdate, map[string]string) {
	details := make(map[string]string)
	update := repositories.DeckUpdate{Name: r.Name}

	if r.Name != nil && *r.Name == "" {
		details["name"] = "name cannot be empty"
	}
	if r.Format != nil {
		format, err := dbmodels.ParseDeckFormat(*r.Format)
		if err != nil {
			details["format"] = err.Error()
		} else {
			update.Format = &format
		}
	}
	if len(details) > 0 {
		return repositories.DeckUpdate{}, details
	}
	return update, nil
}

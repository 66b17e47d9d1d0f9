package models

import (
	"time"

	dbmodels "github.com/ellavondegurechaff/deckvault/deckvault/database/models"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError represents an API error response
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	APIResponse
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// PaginationInfo contains skip/limit pagination metadata
type PaginationInfo struct {
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// NewSuccessResponse creates a successful API response
func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates an error API response
func NewErrorResponse(code, message string, details map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
}

// NewPaginatedResponse creates a paginated API response
func NewPaginatedResponse(data interface{}, pagination *PaginationInfo, message string) *PaginatedResponse {
	return &PaginatedResponse{
		APIResponse: APIResponse{
			Success:   true,
			Message:   message,
			Data:      data,
			Timestamp: time.Now(),
		},
		Pagination: pagination,
	}
}

// CollectionResponse is the wire shape of a collection.
type CollectionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

func NewCollectionResponse(c *dbmodels.Collection) *CollectionResponse {
	return &CollectionResponse{
		ID:          c.ID,
		Name:        c.Name,
		ReleaseDate: c.ReleaseDate.Format("2006-01-02"),
	}
}

func NewCollectionListResponse(collections []*dbmodels.Collection) []*CollectionResponse {
	out := make([]*CollectionResponse, 0, len(collections))
	for _, c := range collections {
		out = append(out, NewCollectionResponse(c))
	}
	return out
}

// CardResponse is the wire shape of a card.
type CardResponse struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Type         dbmodels.CardType   `json:"type"`
	Rarity       dbmodels.CardRarity `json:"rarity"`
	Text         string              `json:"text,omitempty"`
	CollectionID int64               `json:"collection_id"`
}

func NewCardResponse(c *dbmodels.Card) *CardResponse {
	return &CardResponse{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Type,
		Rarity:       c.Rarity,
		Text:         c.Text,
		CollectionID: c.CollectionID,
	}
}

func NewCardListResponse(cards []*dbmodels.Card) []*CardResponse {
	out := make([]*CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewCardResponse(c))
	}
	return out
}

// UserResponse is the wire shape of a user. The password hash never leaves
// the database layer.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *dbmodels.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserListResponse(users []*dbmodels.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// DeckResponse is the wire shape of a deck.
type DeckResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Format    dbmodels.DeckFormat `json:"format"`
	UserID    int64               `json:"user_id"`
	CreatedAt time.Time           `json:"created_at"`
}

func NewDeckResponse(d *dbmodels.Deck) *DeckResponse {
	return &DeckResponse{
		ID:        d.ID,
		Name:      d.Name,
		Format:    d.Format,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}
}

func NewDeckListResponse(decks []*dbmodels.Deck) []*DeckResponse {
	out := make([]*DeckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, NewDeckResponse(d))
	}
	return out
}

// DeckWithCardsResponse is a deck together with its full card list.
type DeckWithCardsResponse struct {
	ID     int64               `json:"id"`
	Name   string              `json:"name"`
	Format dbmodels.DeckFormat `json:"format"`
	UserID int64               `json:"user_id"`
	Cards  []*CardResponse     `json:"cards"`
}

func NewDeckWithCardsResponse(d *dbmodels.Deck) *DeckWithCardsResponse {
	return &DeckWithCardsResponse{
		ID:     d.ID,
		Name:   d.Name,
		Format: d.Format,
		UserID: d.UserID,
		Cards:  NewCardListResponse(d.Cards),
	}
}

// DeckCardResponse is the (deck, card, quantity) tuple returned by link
// mutations.
type DeckCardResponse struct {
	DeckID   int64 `json:"deck_id"`
	CardID   int64 `json:"card_id"`
	Quantity int64 `json:"quantity"`
}

func NewDeckCardResponse(dc *dbmodels.DeckCard) *DeckCardResponse {
	return &DeckCardResponse{
		DeckID:   dc.DeckID,
		CardID:   dc.CardID,
		Quantity: dc.Quantity,
	}
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Deck names are unique per owner, not globally.
type Deck struct {
	bun.BaseModel `bun:"table:decks,alias:d"`

	ID        int64      `bun:"id,pk,autoincrement"`
	Name      string     `bun:"name,notnull,unique:decks_owner_name"`
	Format    DeckFormat `bun:"format,notnull"`
	UserID    int64      `bun:"user_id,notnull,unique:decks_owner_name"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp"`

	// Relations
	Owner *User   `bun:"rel:belongs-to,join:user_id=id"`
	Cards []*Card `bun:"m2m:deck_cards,join:Deck=Card"`
}

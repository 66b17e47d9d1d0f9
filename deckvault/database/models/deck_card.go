package models

import (
	"github.com/uptrace/bun"
)

// DeckCard links a card into a deck with a bounded copy count.
// Quantity stays in [1,3]; a row at quantity 0 is deleted, never stored.
type DeckCard struct {
	bun.BaseModel `bun:"table:deck_cards,alias:dc"`

	DeckID   int64 `bun:"deck_id,pk"`
	CardID   int64 `bun:"card_id,pk"`
	Quantity int64 `bun:"quantity,notnull,default:1"`

	Deck *Deck `bun:"rel:belongs-to,join:deck_id=id"`
	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}

// MaxCopiesPerCard caps how many copies of one card a deck may hold.
const MaxCopiesPerCard = 3

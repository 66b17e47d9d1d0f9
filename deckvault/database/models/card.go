package models

import (
	"github.com/uptrace/bun"
)

type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID           int64      `bun:"id,pk,autoincrement"`
	Name         string     `bun:"name,notnull,unique"`
	Type         CardType   `bun:"type,notnull"`
	Rarity       CardRarity `bun:"rarity,notnull"`
	Text         string     `bun:"text,type:text,nullzero"`
	CollectionID int64      `bun:"collection_id,notnull"`

	// Relations
	Collection *Collection `bun:"rel:belongs-to,join:collection_id=id"`
	Decks      []*Deck     `bun:"m2m:deck_cards,join:Card=Deck"`
}

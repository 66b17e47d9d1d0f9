package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:col"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull,unique"`
	ReleaseDate time.Time `bun:"release_date,notnull,type:date"`

	// Relations
	Cards []*Card `bun:"rel:has-many,join:id=collection_id"`
}

package models

import (
	"github.com/ellavondegurechaff/deckvault/deckvault/database/repositories"
)

// Repositories groups the data-access dependencies handed to handlers.
type Repositories struct {
	Collection repositories.CollectionRepository
	Card       repositories.CardRepository
	User       repositories.UserRepository
	Deck       repositories.DeckRepository
}

func NewRepositories(
	collection repositories.CollectionRepository,
	card repositories.CardRepository,
	user repositories.UserRepository,
	deck repositories.DeckRepository,
) *Repositories {
	return &Repositories{
		Collection: collection,
		Card:       card,
		User:       user,
		Deck:       deck,
	}
}

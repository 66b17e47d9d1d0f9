package handlers

import (
	"context"

	dbmodels "github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/ellavondegurechaff/deckvault/deckvault/database/repositories"
)

// Repository fakes with overridable function fields. Unset methods return
// zero values so each test wires only what it exercises.

type fakeCollectionRepo struct {
	createFn func(ctx context.Context, c *dbmodels.Collection) error
	getFn    func(ctx context.Context, id int64) (*dbmodels.Collection, error)
	updateFn func(ctx context.Context, id int64, u repositories.CollectionUpdate) (*dbmodels.Collection, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, skip, limit int) ([]*dbmodels.Collection, int, error)
	searchFn func(ctx context.Context, name string, skip, limit int) ([]*dbmodels.Collection, error)
}

func (f *fakeCollectionRepo) Create(ctx context.Context, c *dbmodels.Collection) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCollectionRepo) GetByID(ctx context.Context, id int64) (*dbmodels.Collection, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &dbmodels.Collection{ID: id}, nil
}

func (f *fakeCollectionRepo) Update(ctx context.Context, id int64, u repositories.CollectionUpdate) (*dbmodels.Collection, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, u)
	}
	return &dbmodels.Collection{ID: id}, nil
}

func (f *fakeCollectionRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCollectionRepo) List(ctx context.Context, skip, limit int) ([]*dbmodels.Collection, int, error) {
	if f.listFn != nil {
		return f.listFn(ctx, skip, limit)
	}
	return nil, 0, nil
}

func (f *fakeCollectionRepo) SearchByName(ctx context.Context, name string, skip, limit int) ([]*dbmodels.Collection, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, name, skip, limit)
	}
	return nil, nil
}

type fakeCardRepo struct {
	createFn func(ctx context.Context, c *dbmodels.Card) error
	getFn    func(ctx context.Context, id int64) (*dbmodels.Card, error)
	updateFn func(ctx context.Context, id int64, u repositories.CardUpdate) (*dbmodels.Card, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeCardRepo) Create(ctx context.Context, c *dbmodels.Card) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCardRepo) GetByID(ctx context.Context, id int64) (*dbmodels.Card, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &dbmodels.Card{ID: id}, nil
}

func (f *fakeCardRepo) Update(ctx context.Context, id int64, u repositories.CardUpdate) (*dbmodels.Card, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, u)
	}
	return &dbmodels.Card{ID: id}, nil
}

func (f *fakeCardRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCardRepo) List(ctx context.Context, skip, limit int) ([]*dbmodels.Card, int, error) {
	return nil, 0, nil
}

func (f *fakeCardRepo) GetByCollectionID(ctx context.Context, collectionID int64, skip, limit int) ([]*dbmodels.Card, error) {
	return nil, nil
}

func (f *fakeCardRepo) SearchByName(ctx context.Context, name string, skip, limit int) ([]*dbmodels.Card, error) {
	return nil, nil
}

func (f *fakeCardRepo) CountByCollection(ctx context.Context) ([]repositories.CollectionCardCount, error) {
	return nil, nil
}

func (f *fakeCardRepo) CountByRarity(ctx context.Context) ([]repositories.RarityCount, error) {
	return nil, nil
}

func (f *fakeCardRepo) CountByType(ctx context.Context) ([]repositories.TypeCount, error) {
	return nil, nil
}

type fakeUserRepo struct {
	createFn func(ctx context.Context, u *dbmodels.User) error
	getFn    func(ctx context.Context, id int64) (*dbmodels.User, error)
	updateFn func(ctx context.Context, id int64, u repositories.UserUpdate) (*dbmodels.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *dbmodels.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*dbmodels.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &dbmodels.User{ID: id}, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, u repositories.UserUpdate) (*dbmodels.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, u)
	}
	return &dbmodels.User{ID: id}, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, skip, limit int) ([]*dbmodels.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) GetDecks(ctx context.Context, userID int64) ([]*dbmodels.Deck, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountDecks(ctx context.Context, userID int64) (int64, error) {
	return 0, nil
}

func (f *fakeUserRepo) CountDecksByFormat(ctx context.Context, userID int64) (map[dbmodels.DeckFormat]int64, error) {
	return nil, nil
}

type fakeDeckRepo struct {
	createFn       func(ctx context.Context, d *dbmodels.Deck) error
	getFn          func(ctx context.Context, id int64) (*dbmodels.Deck, error)
	getWithCardsFn func(ctx context.Context, id int64) (*dbmodels.Deck, error)
	addCardFn      func(ctx context.Context, deckID, cardID int64) (*dbmodels.DeckCard, error)
	removeCardFn   func(ctx context.Context, deckID, cardID int64) error
	countCardsFn   func(ctx context.Context, deckID int64) (int64, error)
}

func (f *fakeDeckRepo) Create(ctx context.Context, d *dbmodels.Deck) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDeckRepo) GetByID(ctx context.Context, id int64) (*dbmodels.Deck, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &dbmodels.Deck{ID: id}, nil
}

func (f *fakeDeckRepo) Update(ctx context.Context, id int64, u repositories.DeckUpdate) (*dbmodels.Deck, error) {
	return &dbmodels.Deck{ID: id}, nil
}

func (f *fakeDeckRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeDeckRepo) List(ctx context.Context, skip, limit int) ([]*dbmodels.Deck, int, error) {
	return nil, 0, nil
}

func (f *fakeDeckRepo) GetWithCards(ctx context.Context, id int64) (*dbmodels.Deck, error) {
	if f.getWithCardsFn != nil {
		return f.getWithCardsFn(ctx, id)
	}
	return &dbmodels.Deck{ID: id}, nil
}

func (f *fakeDeckRepo) AddCard(ctx context.Context, deckID, cardID int64) (*dbmodels.DeckCard, error) {
	if f.addCardFn != nil {
		return f.addCardFn(ctx, deckID, cardID)
	}
	return &dbmodels.DeckCard{DeckID: deckID, CardID: cardID, Quantity: 1}, nil
}

func (f *fakeDeckRepo) RemoveCard(ctx context.Context, deckID, cardID int64) error {
	if f.removeCardFn != nil {
		return f.removeCardFn(ctx, deckID, cardID)
	}
	return nil
}

func (f *fakeDeckRepo) CountCards(ctx context.Context, deckID int64) (int64, error) {
	if f.countCardsFn != nil {
		return f.countCardsFn(ctx, deckID)
	}
	return 0, nil
}

func (f *fakeDeckRepo) CountByFormat(ctx context.Context) ([]repositories.FormatCount, error) {
	return nil, nil
}

func (f *fakeDeckRepo) AverageCardsPerDeck(ctx context.Context) (float64, error) {
	return 0, nil
}

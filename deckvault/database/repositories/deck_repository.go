package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/uptrace/bun"
)

type DeckRepository interface {
	Create(ctx context.Context, deck *models.Deck) error
	GetByID(ctx context.Context, id int64) (*models.Deck, error)
	Update(ctx context.Context, id int64, update DeckUpdate) (*models.Deck, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int) ([]*models.Deck, int, error)
	GetWithCards(ctx context.Context, id int64) (*models.Deck, error)
	AddCard(ctx context.Context, deckID, cardID int64) (*models.DeckCard, error)
	RemoveCard(ctx context.Context, deckID, cardID int64) error
	CountCards(ctx context.Context, deckID int64) (int64, error)
	CountByFormat(ctx context.Context) ([]FormatCount, error)
	AverageCardsPerDeck(ctx context.Context) (float64, error)
}

// DeckUpdate carries the optional fields of a partial update.
type DeckUpdate struct {
	Name   *string
	Format *models.DeckFormat
}

func (u DeckUpdate) empty() bool {
	return u.Name == nil && u.Format == nil
}

// FormatCount is a decks-per-format aggregate row.
type FormatCount struct {
	Format models.DeckFormat `bun:"format" json:"format"`
	Count  int64             `bun:"count" json:"count"`
}

type deckRepository struct {
	*BaseRepository
}

func NewDeckRepository(db *bun.DB) DeckRepository {
	return &deckRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	ownerExists, err := r.Exists(ctx, "user", r.db.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", deck.UserID))
	if err != nil {
		return err
	}
	if !ownerExists {
		return &NotFoundError{Entity: "user", ID: deck.UserID}
	}

	// Per-owner name uniqueness, backed by the composite unique constraint
	taken, err := r.Exists(ctx, "deck", r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Where("user_id = ? AND name = ?", deck.UserID, deck.Name))
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Entity: "deck", Field: "name", Value: deck.Name}
	}

	deck.CreatedAt = time.Now()
	_, err = r.db.NewInsert().
		Model(deck).
		Returning("id").
		Exec(ctx)

	return r.HandleErrorWithID("create", "deck", deck.Name, err)
}

func (r *deckRepository) GetByID(ctx context.Context, id int64) (*models.Deck, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	deck := new(models.Deck)
	err := r.db.NewSelect().
		Model(deck).
		Where("d.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "deck", id, err)
	}

	return deck, nil
}

func (r *deckRepository) Update(ctx context.Context, id int64, update DeckUpdate) (*models.Deck, error) {
	if update.empty() {
		return nil, &EmptyUpdateError{Entity: "deck"}
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := r.db.NewUpdate().
		Model((*models.Deck)(nil)).
		Where("id = ?", id)

	if update.Name != nil {
		query = query.Set("name = ?", *update.Name)
	}
	if update.Format != nil {
		query = query.Set("format = ?", *update.Format)
	}

	// A rename that collides within the owner trips the composite unique
	res, err := query.Exec(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("update", "deck", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &NotFoundError{Entity: "deck", ID: id}
	}

	return r.GetByID(ctx, id)
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	// Link rows go with the deck (ON DELETE CASCADE)
	res, err := r.db.NewDelete().
		Model((*models.Deck)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("delete", "deck", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "deck", ID: id}
	}

	return nil
}

func (r *deckRepository) List(ctx context.Context, skip, limit int) ([]*models.Deck, int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var decks []*models.Deck
	total, err := r.db.NewSelect().
		Model(&decks).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, r.HandleError("list", "deck", err)
	}

	return decks, total, nil
}

// GetWithCards loads a deck and its full card list in one round trip.
func (r *deckRepository) GetWithCards(ctx context.Context, id int64) (*models.Deck, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	deck := new(models.Deck)
	err := r.db.NewSelect().
		Model(deck).
		Relation("Cards").
		Where("d.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get_with_cards", "deck", id, err)
	}

	return deck, nil
}

// AddCard applies the bounded-counter transition for one (deck, card) pair:
// absent -> 1 -> 2 -> 3, conflict at 3. The link row is locked for the
// duration of the transaction so concurrent adds serialize on it.
func (r *deckRepository) AddCard(ctx context.Context, deckID, cardID int64) (*models.DeckCard, error) {
	link := new(models.DeckCard)

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.checkPairExists(ctx, tx, deckID, cardID); err != nil {
			return err
		}

		err := tx.NewSelect().
			Model(link).
			Where("deck_id = ? AND card_id = ?", deckID, cardID).
			For("UPDATE").
			Scan(ctx)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			link.DeckID = deckID
			link.CardID = cardID
			link.Quantity = 1
			_, err = tx.NewInsert().Model(link).Exec(ctx)
			return r.HandleErrorWithID("add_card", "deck card", deckID, err)

		case err != nil:
			return r.HandleErrorWithID("add_card", "deck card", deckID, err)
		}

		if link.Quantity >= models.MaxCopiesPerCard {
			return &CopyLimitError{DeckID: deckID, CardID: cardID, Limit: models.MaxCopiesPerCard}
		}

		link.Quantity++
		_, err = tx.NewUpdate().
			Model((*models.DeckCard)(nil)).
			Set("quantity = quantity + 1").
			Where("deck_id = ? AND card_id = ?", deckID, cardID).
			Exec(ctx)
		return r.HandleErrorWithID("add_card", "deck card", deckID, err)
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// RemoveCard applies the reverse transition: 3 -> 2 -> 1 -> absent. The row
// is deleted outright at quantity 1; no zero-quantity row is ever persisted.
func (r *deckRepository) RemoveCard(ctx context.Context, deckID, cardID int64) error {
	return r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.checkPairExists(ctx, tx, deckID, cardID); err != nil {
			return err
		}

		link := new(models.DeckCard)
		err := tx.NewSelect().
			Model(link).
			Where("deck_id = ? AND card_id = ?", deckID, cardID).
			For("UPDATE").
			Scan(ctx)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			return &NotFoundError{Entity: "deck card", ID: cardID}

		case err != nil:
			return r.HandleErrorWithID("remove_card", "deck card", deckID, err)
		}

		if link.Quantity > 1 {
			_, err = tx.NewUpdate().
				Model((*models.DeckCard)(nil)).
				Set("quantity = quantity - 1").
				Where("deck_id = ? AND card_id = ?", deckID, cardID).
				Exec(ctx)
			return r.HandleErrorWithID("remove_card", "deck card", deckID, err)
		}

		_, err = tx.NewDelete().
			Model((*models.DeckCard)(nil)).
			Where("deck_id = ? AND card_id = ?", deckID, cardID).
			Exec(ctx)
		return r.HandleErrorWithID("remove_card", "deck card", deckID, err)
	})
}

// checkPairExists validates both ends of a link mutation up front.
func (r *deckRepository) checkPairExists(ctx context.Context, tx bun.Tx, deckID, cardID int64) error {
	deckExists, err := tx.NewSelect().
		Model((*models.Deck)(nil)).
		Where("id = ?", deckID).
		Exists(ctx)
	if err != nil {
		return r.HandleErrorWithID("check", "deck", deckID, err)
	}
	if !deckExists {
		return &NotFoundError{Entity: "deck", ID: deckID}
	}

	cardExists, err := tx.NewSelect().
		Model((*models.Card)(nil)).
		Where("id = ?", cardID).
		Exists(ctx)
	if err != nil {
		return r.HandleErrorWithID("check", "card", cardID, err)
	}
	if !cardExists {
		return &NotFoundError{Entity: "card", ID: cardID}
	}

	return nil
}

// CountCards returns the sum of quantities across a deck's link rows,
// not the number of distinct cards.
func (r *deckRepository) CountCards(ctx context.Context, deckID int64) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	deckExists, err := r.Exists(ctx, "deck", r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Where("id = ?", deckID))
	if err != nil {
		return 0, err
	}
	if !deckExists {
		return 0, &NotFoundError{Entity: "deck", ID: deckID}
	}

	var total int64
	err = r.db.NewSelect().
		Model((*models.DeckCard)(nil)).
		ColumnExpr("COALESCE(SUM(quantity), 0)").
		Where("deck_id = ?", deckID).
		Scan(ctx, &total)
	if err != nil {
		return 0, r.HandleErrorWithID("count_cards", "deck", deckID, err)
	}

	return total, nil
}

func (r *deckRepository) CountByFormat(ctx context.Context) ([]FormatCount, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var counts []FormatCount
	err := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		ColumnExpr("format").
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("format").
		OrderExpr("count DESC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, r.HandleError("count_by_format", "deck", err)
	}

	return counts, nil
}

// AverageCardsPerDeck averages per-deck quantity sums across all decks;
// a deck with no entries contributes 0 to the average.
func (r *deckRepository) AverageCardsPerDeck(ctx context.Context) (float64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var avg float64
	err := r.db.NewSelect().
		ColumnExpr("COALESCE(AVG(COALESCE(t.total, 0)), 0)").
		TableExpr("decks AS d").
		Join("LEFT JOIN (SELECT deck_id, SUM(quantity) AS total FROM deck_cards GROUP BY deck_id) AS t ON t.deck_id = d.id").
		Scan(ctx, &avg)
	if err != nil {
		return 0, r.HandleError("average_cards", "deck", err)
	}

	return avg, nil
}

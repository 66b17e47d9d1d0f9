package repositories

import (
	"context"

	"github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/uptrace/bun"
)

// MaxSearchLimit caps free-text search page sizes.
const MaxSearchLimit = 50

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	Update(ctx context.Context, id int64, update CardUpdate) (*models.Card, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int) ([]*models.Card, int, error)
	GetByCollectionID(ctx context.Context, collectionID int64, skip, limit int) ([]*models.Card, error)
	SearchByName(ctx context.Context, name string, skip, limit int) ([]*models.Card, error)
	CountByCollection(ctx context.Context) ([]CollectionCardCount, error)
	CountByRarity(ctx context.Context) ([]RarityCount, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
}

// CardUpdate carries the optional fields of a partial update.
type CardUpdate struct {
	Name         *string
	Type         *models.CardType
	Rarity       *models.CardRarity
	Text         *string
	CollectionID *int64
}

func (u CardUpdate) empty() bool {
	return u.Name == nil && u.Type == nil && u.Rarity == nil &&
		u.Text == nil && u.CollectionID == nil
}

// CollectionCardCount is a cards-per-collection aggregate row.
type CollectionCardCount struct {
	CollectionID   int64  `bun:"collection_id" json:"collection_id"`
	CollectionName string `bun:"collection_name" json:"collection_name"`
	Count          int64  `bun:"count" json:"count"`
}

// RarityCount is a cards-per-rarity aggregate row.
type RarityCount struct {
	Rarity models.CardRarity `bun:"rarity" json:"rarity"`
	Count  int64             `bun:"count" json:"count"`
}

// TypeCount is a cards-per-type aggregate row.
type TypeCount struct {
	Type  models.CardType `bun:"type" json:"type"`
	Count int64           `bun:"count" json:"count"`
}

type cardRepository struct {
	*BaseRepository
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.Exists(ctx, "card", r.db.NewSelect().
		Model((*models.Card)(nil)).
		Where("name = ?", card.Name))
	if err != nil {
		return err
	}
	if exists {
		return &ConflictError{Entity: "card", Field: "name", Value: card.Name}
	}

	// A bogus collection reference surfaces as a foreign-key violation here
	_, err = r.db.NewInsert().
		Model(card).
		Returning("id").
		Exec(ctx)

	return r.HandleErrorWithID("create", "card", card.Name, err)
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "card", id, err)
	}

	return card, nil
}

func (r *cardRepository) Update(ctx context.Context, id int64, update CardUpdate) (*models.Card, error) {
	if update.empty() {
		return nil, &EmptyUpdateError{Entity: "card"}
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := r.db.NewUpdate().
		Model((*models.Card)(nil)).
		Where("id = ?", id)

	if update.Name != nil {
		query = query.Set("name = ?", *update.Name)
	}
	if update.Type != nil {
		query = query.Set("type = ?", *update.Type)
	}
	if update.Rarity != nil {
		query = query.Set("rarity = ?", *update.Rarity)
	}
	if update.Text != nil {
		query = query.Set("text = ?", *update.Text)
	}
	if update.CollectionID != nil {
		query = query.Set("collection_id = ?", *update.CollectionID)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("update", "card", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &NotFoundError{Entity: "card", ID: id}
	}

	return r.GetByID(ctx, id)
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Card)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("delete", "card", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "card", ID: id}
	}

	return nil
}

func (r *cardRepository) List(ctx context.Context, skip, limit int) ([]*models.Card, int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var cards []*models.Card
	total, err := r.db.NewSelect().
		Model(&cards).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, r.HandleError("list", "card", err)
	}

	return cards, total, nil
}

func (r *cardRepository) GetByCollectionID(ctx context.Context, collectionID int64, skip, limit int) ([]*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.Exists(ctx, "collection", r.db.NewSelect().
		Model((*models.Collection)(nil)).
		Where("id = ?", collectionID))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Entity: "collection", ID: collectionID}
	}

	var cards []*models.Card
	err = r.db.NewSelect().
		Model(&cards).
		Where("collection_id = ?", collectionID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_by_collection", "card", err)
	}

	return cards, nil
}

func (r *cardRepository) SearchByName(ctx context.Context, name string, skip, limit int) ([]*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("name ILIKE ?", "%"+name+"%").
		Order("name ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("search", "card", err)
	}

	return cards, nil
}

func (r *cardRepository) CountByCollection(ctx context.Context) ([]CollectionCardCount, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var counts []CollectionCardCount
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		ColumnExpr("c.collection_id AS collection_id").
		ColumnExpr("col.name AS collection_name").
		ColumnExpr("COUNT(*) AS count").
		Join("JOIN collections AS col ON col.id = c.collection_id").
		GroupExpr("c.collection_id, col.name").
		OrderExpr("count DESC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, r.HandleError("count_by_collection", "card", err)
	}

	return counts, nil
}

func (r *cardRepository) CountByRarity(ctx context.Context) ([]RarityCount, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var counts []RarityCount
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		ColumnExpr("rarity").
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("rarity").
		OrderExpr("count DESC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, r.HandleError("count_by_rarity", "card", err)
	}

	return counts, nil
}

func (r *cardRepository) CountByType(ctx context.Context) ([]TypeCount, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var counts []TypeCount
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		ColumnExpr("type").
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("type").
		OrderExpr("count DESC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, r.HandleError("count_by_type", "card", err)
	}

	return counts, nil
}

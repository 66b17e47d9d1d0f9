package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/uptrace/bun"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id int64) (*models.Collection, error)
	Update(ctx context.Context, id int64, update CollectionUpdate) (*models.Collection, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int) ([]*models.Collection, int, error)
	SearchByName(ctx context.Context, name string, skip, limit int) ([]*models.Collection, error)
}

// CollectionUpdate carries the optional fields of a partial update.
// Nil fields are left untouched.
type CollectionUpdate struct {
	Name        *string
	ReleaseDate *time.Time
}

func (u CollectionUpdate) empty() bool {
	return u.Name == nil && u.ReleaseDate == nil
}

type collectionRepository struct {
	*BaseRepository
}

func NewCollectionRepository(db *bun.DB) CollectionRepository {
	return &collectionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.Exists(ctx, "collection", r.db.NewSelect().
		Model((*models.Collection)(nil)).
		Where("name = ?", collection.Name))
	if err != nil {
		return err
	}
	if exists {
		return &ConflictError{Entity: "collection", Field: "name", Value: collection.Name}
	}

	_, err = r.db.NewInsert().
		Model(collection).
		Returning("id").
		Exec(ctx)

	return r.HandleErrorWithID("create", "collection", collection.Name, err)
}

func (r *collectionRepository) GetByID(ctx context.Context, id int64) (*models.Collection, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	collection := new(models.Collection)
	err := r.db.NewSelect().
		Model(collection).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "collection", id, err)
	}

	return collection, nil
}

func (r *collectionRepository) Update(ctx context.Context, id int64, update CollectionUpdate) (*models.Collection, error) {
	if update.empty() {
		return nil, &EmptyUpdateError{Entity: "collection"}
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := r.db.NewUpdate().
		Model((*models.Collection)(nil)).
		Where("id = ?", id)

	if update.Name != nil {
		query = query.Set("name = ?", *update.Name)
	}
	if update.ReleaseDate != nil {
		query = query.Set("release_date = ?", *update.ReleaseDate)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("update", "collection", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &NotFoundError{Entity: "collection", ID: id}
	}

	return r.GetByID(ctx, id)
}

func (r *collectionRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	// Cards referencing the collection make this a foreign-key violation
	res, err := r.db.NewDelete().
		Model((*models.Collection)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("delete", "collection", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "collection", ID: id}
	}

	return nil
}

func (r *collectionRepository) List(ctx context.Context, skip, limit int) ([]*models.Collection, int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var collections []*models.Collection
	total, err := r.db.NewSelect().
		Model(&collections).
		Order("release_date DESC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, r.HandleError("list", "collection", err)
	}

	return collections, total, nil
}

func (r *collectionRepository) SearchByName(ctx context.Context, name string, skip, limit int) ([]*models.Collection, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	var collections []*models.Collection
	err := r.db.NewSelect().
		Model(&collections).
		Where("name ILIKE ?", "%"+name+"%").
		Order("name ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("search", "collection", err)
	}

	return collections, nil
}

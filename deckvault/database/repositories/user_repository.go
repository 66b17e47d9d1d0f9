package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, update UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int) ([]*models.User, int, error)
	GetDecks(ctx context.Context, userID int64) ([]*models.Deck, error)
	CountDecks(ctx context.Context, userID int64) (int64, error)
	CountDecksByFormat(ctx context.Context, userID int64) (map[models.DeckFormat]int64, error)
}

// UserUpdate carries the optional fields of a partial update.
// PasswordHash must already be hashed by the caller.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

func (u UserUpdate) empty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.Exists(ctx, "user", r.db.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ?", user.Email))
	if err != nil {
		return err
	}
	if exists {
		return &ConflictError{Entity: "user", Field: "email", Value: user.Email}
	}

	user.CreatedAt = time.Now()
	_, err = r.db.NewInsert().
		Model(user).
		Returning("id").
		Exec(ctx)

	return r.HandleErrorWithID("create", "user", user.Email, err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", id, err)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, update UserUpdate) (*models.User, error) {
	if update.empty() {
		return nil, &EmptyUpdateError{Entity: "user"}
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	query := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Where("id = ?", id)

	if update.Name != nil {
		query = query.Set("name = ?", *update.Name)
	}
	if update.Email != nil {
		query = query.Set("email = ?", *update.Email)
	}
	if update.PasswordHash != nil {
		query = query.Set("password_hash = ?", *update.PasswordHash)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("update", "user", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &NotFoundError{Entity: "user", ID: id}
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	// Owned decks keep the row alive through the foreign key
	res, err := r.db.NewDelete().
		Model((*models.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("delete", "user", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "user", ID: id}
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]*models.User, int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var users []*models.User
	total, err := r.db.NewSelect().
		Model(&users).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, r.HandleError("list", "user", err)
	}

	return users, total, nil
}

func (r *userRepository) GetDecks(ctx context.Context, userID int64) ([]*models.Deck, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := r.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	var decks []*models.Deck
	err := r.db.NewSelect().
		Model(&decks).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get_decks", "user", userID, err)
	}

	return decks, nil
}

func (r *userRepository) CountDecks(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := r.checkUserExists(ctx, userID); err != nil {
		return 0, err
	}

	count, err := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, r.HandleErrorWithID("count_decks", "user", userID, err)
	}

	return int64(count), nil
}

// CountDecksByFormat maps format to deck count for one owner. Formats with
// no decks are absent from the result.
func (r *userRepository) CountDecksByFormat(ctx context.Context, userID int64) (map[models.DeckFormat]int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := r.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	var counts []FormatCount
	err := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		ColumnExpr("format").
		ColumnExpr("COUNT(*) AS count").
		Where("user_id = ?", userID).
		GroupExpr("format").
		Scan(ctx, &counts)
	if err != nil {
		return nil, r.HandleErrorWithID("count_decks_by_format", "user", userID, err)
	}

	result := make(map[models.DeckFormat]int64, len(counts))
	for _, c := range counts {
		result[c.Format] = c.Count
	}
	return result, nil
}

func (r *userRepository) checkUserExists(ctx context.Context, userID int64) error {
	exists, err := r.Exists(ctx, "user", r.db.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", userID))
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Entity: "user", ID: userID}
	}
	return nil
}

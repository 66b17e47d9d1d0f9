package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/ellavondegurechaff/deckvault/deckvault/database/models"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, pgdialect.New())
	// m2m relations on Deck and Card resolve through the link table
	db.RegisterModel((*models.DeckCard)(nil))
	return db, mock
}

func expectPairExists(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT EXISTS.*"decks"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS.*"cards"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
}

func linkRow(quantity int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"deck_id", "card_id", "quantity"}).
		AddRow(int64(1), int64(2), quantity)
}

func TestAddCardIncrementsExistingLink(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	expectPairExists(mock)
	mock.ExpectQuery(`SELECT .*"deck_cards".*FOR UPDATE`).
		WillReturnRows(linkRow(2))
	mock.ExpectExec(`UPDATE "deck_cards".*SET quantity = quantity \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	link, err := repo.AddCard(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), link.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCardInsertsFirstCopy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	expectPairExists(mock)
	mock.ExpectQuery(`SELECT .*"deck_cards".*FOR UPDATE`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO "deck_cards"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	link, err := repo.AddCard(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), link.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCardRejectsFourthCopy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	expectPairExists(mock)
	mock.ExpectQuery(`SELECT .*"deck_cards".*FOR UPDATE`).
		WillReturnRows(linkRow(3))
	mock.ExpectRollback()

	_, err := repo.AddCard(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, IsCopyLimit(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCardMissingDeck(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS.*"decks"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.AddCard(context.Background(), 42, 2)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveCardDecrements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	expectPairExists(mock)
	mock.ExpectQuery(`SELECT .*"deck_cards".*FOR UPDATE`).
		WillReturnRows(linkRow(3))
	mock.ExpectExec(`UPDATE "deck_cards".*SET quantity = quantity - 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RemoveCard(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveCardDeletesLastCopy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	expectPairExists(mock)
	mock.ExpectQuery(`SELECT .*"deck_cards".*FOR UPDATE`).
		WillReturnRows(linkRow(1))
	mock.ExpectExec(`DELETE FROM "deck_cards"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RemoveCard(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveCardAbsentLink(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectBegin()
	expectPairExists(mock)
	mock.ExpectQuery(`SELECT .*"deck_cards".*FOR UPDATE`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.RemoveCard(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountCardsSumsQuantities(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeckRepository(db)

	mock.ExpectQuery(`SELECT EXISTS.*"decks"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(5)))

	count, err := repo.CountCards(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDeckEmptyPayload(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewDeckRepository(db)

	_, err := repo.Update(context.Background(), 1, DeckUpdate{})
	require.Error(t, err)
	assert.True(t, IsEmptyUpdate(err))
}

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/deckvault/deckvault/database/models"
)

func TestCreateCollection(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	mock.ExpectQuery(`SELECT EXISTS.*"collections"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO "collections".*RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	collection := &models.Collection{
		Name:        "Shadow Realm",
		ReleaseDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), collection))
	assert.Equal(t, int64(1), collection.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCollectionDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	mock.ExpectQuery(`SELECT EXISTS.*"collections"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Create(context.Background(), &models.Collection{Name: "Shadow Realm"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCollectionEmptyPayload(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewCollectionRepository(db)

	_, err := repo.Update(context.Background(), 1, CollectionUpdate{})
	require.Error(t, err)
	assert.True(t, IsEmptyUpdate(err))
}

func TestUpdateCollectionNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	mock.ExpectExec(`UPDATE "collections".*SET name = `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	name := "Renamed"
	_, err := repo.Update(context.Background(), 99, CollectionUpdate{Name: &name})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCollectionNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	mock.ExpectExec(`DELETE FROM "collections"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

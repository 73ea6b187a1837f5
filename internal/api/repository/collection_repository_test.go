package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCollectionSetFlag_UpsertOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	// One row per (user_id, url); flipping a flag on an existing row must
	// update in place rather than insert a second row.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "user_movies" .*ON CONFLICT \("user_id","url"\) DO UPDATE SET "is_seen"=.*RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.SetFlag(context.Background(), "alice-id", "inception-27205", "Inception", "is_seen", true)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionSetFlag_DoubleAddIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "user_movies" .*ON CONFLICT \("user_id","url"\) DO UPDATE SET "is_seen"=.*RETURNING "id"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()
	}

	for i := 0; i < 2; i++ {
		err := repo.SetFlag(context.Background(), "alice-id", "inception-27205", "Inception", "is_seen", true)
		assert.NoError(t, err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionSetFlag_ClearDropsAllFalseRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	// Clearing the last flag leaves a row that means nothing; the same
	// transaction sweeps it away.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "user_movies" .*ON CONFLICT \("user_id","url"\) DO UPDATE SET "is_seen"=.*RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "user_movies" WHERE user_id = \$1 AND url = \$2 AND is_owned = false AND is_wanted = false AND is_seen = false`).
		WithArgs("alice-id", "inception-27205").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetFlag(context.Background(), "alice-id", "inception-27205", "Inception", "is_seen", false)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionSetFlag_ClearKeepsRowWithOtherFlags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "user_movies" .*ON CONFLICT \("user_id","url"\) DO UPDATE SET "is_seen"=.*RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "user_movies" WHERE user_id = \$1 AND url = \$2 AND is_owned = false AND is_wanted = false AND is_seen = false`).
		WithArgs("alice-id", "inception-27205").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SetFlag(context.Background(), "alice-id", "inception-27205", "Inception", "is_seen", false)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionSetFlag_UnknownFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	err := repo.SetFlag(context.Background(), "alice-id", "inception-27205", "Inception", "is_favorite", true)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionListByFlag_FiltersAndOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollectionRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user_movies" WHERE user_id = \$1 AND is_seen = true ORDER BY updated_at DESC`).
		WithArgs("alice-id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "url", "film", "is_seen"}).
			AddRow(1, "alice-id", "inception-27205", "Inception", true))

	list, err := repo.ListByFlag(context.Background(), "alice-id", "is_seen")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "inception-27205", list[0].MovieSlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"testing"

	"filmboard/internal/api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMovieUpsert_OnConflictUpdatesMetadata(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(`INSERT INTO "allmovies" .*ON CONFLICT \("url"\) DO UPDATE SET.*"film".*RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	movie := &models.Movie{
		Slug:  "inception-27205",
		Title: "Inception",
		Genre: "scifi",
	}
	err := repo.Upsert(context.Background(), movie)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieGetBySlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	rows := sqlmock.NewRows([]string{"id", "url", "film", "genre"}).
		AddRow(1, "inception-27205", "Inception", "scifi")

	mock.ExpectQuery(`SELECT \* FROM "allmovies" WHERE url = \$1 ORDER BY "allmovies"\."id" LIMIT \$2`).
		WithArgs("inception-27205", 1).
		WillReturnRows(rows)

	movie, err := repo.GetBySlug(context.Background(), "inception-27205")
	assert.NoError(t, err)
	assert.Equal(t, "Inception", movie.Title)
}

func TestMovieGetByGenre_Paginates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "allmovies" WHERE genre = \$1`).
		WithArgs("scifi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	rows := sqlmock.NewRows([]string{"id", "url", "film", "genre"}).
		AddRow(1, "arrival-329865", "Arrival", "scifi").
		AddRow(2, "inception-27205", "Inception", "scifi")

	mock.ExpectQuery(`SELECT \* FROM "allmovies" WHERE genre = \$1 ORDER BY film asc LIMIT \$2 OFFSET \$3`).
		WithArgs("scifi", 10, 10).
		WillReturnRows(rows)

	list, total, err := repo.GetByGenre(context.Background(), "scifi", 2, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, list, 2)
}

func TestMovieSearchByTitle_EmptyQuery(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewMovieRepo(db)

	list, err := repo.SearchByTitle(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestMovieSearchByTitle_TokensAreAnded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	rows := sqlmock.NewRows([]string{"id", "url", "film", "genre"}).
		AddRow(1, "blade-runner-78", "Blade Runner", "scifi")

	mock.ExpectQuery(`SELECT \* FROM "allmovies" WHERE \(film ILIKE \$1 OR COALESCE\(director,''\) ILIKE \$2 OR url ILIKE \$3\) AND \(film ILIKE \$4 OR COALESCE\(director,''\) ILIKE \$5 OR url ILIKE \$6\) ORDER BY film asc`).
		WithArgs("%blade%", "%blade%", "%blade%", "%runner%", "%runner%", "%runner%").
		WillReturnRows(rows)

	list, err := repo.SearchByTitle(context.Background(), "blade runner")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMovieUpdatePoster(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectExec(`UPDATE "allmovies" SET "image_url"=\$1 WHERE url = \$2`).
		WithArgs("https://image.tmdb.org/t/p/w500/inception.jpg", "inception-27205").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePoster(context.Background(), "inception-27205", "https://image.tmdb.org/t/p/w500/inception.jpg")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

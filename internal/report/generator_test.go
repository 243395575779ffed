// internal/report/generator_test.go
package report

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"chinook-assistant/internal/catalog"
	"chinook-assistant/internal/common/logger"
	"chinook-assistant/internal/intent"
)

func setupGenerator(t *testing.T) (*Generator, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewGenerator(catalog.NewStore(db), logger.NewNoOpLogger()), mock
}

func TestGenerator_ArtistTracks(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT ar.name, COUNT\(t.track_id\)`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
			AddRow("Iron Maiden", 213).
			AddRow("U2", 135))

	text := gen.ArtistTracks(context.Background(), 2)

	assert.Equal(t, "Top 2 Artists with Most Tracks:\nIron Maiden: 213 tracks\nU2: 135 tracks\n", text)
}

func TestGenerator_ArtistTracks_StoreFailure(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT ar.name, COUNT\(t.track_id\)`).
		WillReturnError(sql.ErrConnDone)

	text := gen.ArtistTracks(context.Background(), 5)

	assert.Equal(t, "Sorry, I couldn't retrieve the artist tracks report right now.", text)
}

func TestGenerator_Genres(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT g.name, COUNT\(t.track_id\)`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
			AddRow("Rock", 1297).
			AddRow("Latin", 579))

	text := gen.Genres(context.Background(), 2)

	assert.Equal(t, "Top 2 Genres with Most Tracks:\nRock: 1297 tracks\nLatin: 579 tracks\n", text)
}

func TestGenerator_Albums(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT al.title, ar.name, COUNT\(t.track_id\)`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"title", "name", "count"}).
			AddRow("Greatest Hits", "Lenny Kravitz", 57))

	text := gen.Albums(context.Background(), 1)

	assert.Equal(t, "Top 1 Albums with Most Tracks:\nGreatest Hits by Lenny Kravitz: 57 tracks\n", text)
}

func TestGenerator_ArtistList_Truncated(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT name FROM artists ORDER BY name LIMIT`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("AC/DC").
			AddRow("Accept"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artists`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(275))

	text := gen.ArtistList(context.Background(), 2)

	assert.Equal(t,
		"Artists in the database (showing 2 of 275):\n• AC/DC\n• Accept\n\n(Add 'show all' to your request to see all 275 artists)",
		text)
}

func TestGenerator_ArtistList_Complete(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT name FROM artists ORDER BY name LIMIT`).
		WithArgs(275).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("AC/DC").
			AddRow("Accept"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artists`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	text := gen.ArtistList(context.Background(), 275)

	assert.Equal(t, "Artists in the database (showing 2 of 2):\n• AC/DC\n• Accept\n", text)
}

func TestGenerator_ArtistSpecific_ExactMatchWins(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT artist_id, name FROM artists`).
		WithArgs("%queen%").
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "name"}).
			AddRow(50, "Queensrÿche").
			AddRow(51, "Queen"))
	mock.ExpectQuery(`SELECT ar.name, COUNT\(DISTINCT al.album_id\), COUNT\(t.track_id\)`).
		WithArgs(51).
		WillReturnRows(sqlmock.NewRows([]string{"name", "albums", "tracks"}).
			AddRow("Queen", 3, 45))
	mock.ExpectQuery(`SELECT al.title, COUNT\(t.track_id\)`).
		WithArgs(51).
		WillReturnRows(sqlmock.NewRows([]string{"title", "count"}).
			AddRow("Greatest Hits I", 17).
			AddRow("News Of The World", 11))

	text := gen.ArtistSpecific(context.Background(), "queen")

	assert.Equal(t,
		"Artist Report: Queen\nTotal Albums: 3\nTotal Tracks: 45\n\nAlbums:\n• Greatest Hits I: 17 tracks\n• News Of The World: 11 tracks\n",
		text)
}

func TestGenerator_ArtistSpecific_NoAlbums(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT artist_id, name FROM artists`).
		WithArgs("%milton%").
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "name"}).
			AddRow(25, "Milton Nascimento"))
	mock.ExpectQuery(`SELECT ar.name, COUNT\(DISTINCT al.album_id\), COUNT\(t.track_id\)`).
		WithArgs(25).
		WillReturnError(sql.ErrNoRows)

	text := gen.ArtistSpecific(context.Background(), "milton")

	assert.Equal(t, "Artist Report: Milton Nascimento\nThis artist has no albums or tracks in the database.", text)
}

func TestGenerator_ArtistSpecific_MissSuggestsSimilar(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT artist_id, name FROM artists`).
		WithArgs("%metallca%").
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "name"}))
	mock.ExpectQuery(`SELECT name FROM artists ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("Metallica"))

	text := gen.ArtistSpecific(context.Background(), "metallca")

	// The misspelled token shares no 3+ character word with "Metallica", so
	// no suggestion list is produced.
	assert.Equal(t, "Sorry, I couldn't find an artist matching 'metallca'. Try another artist name or check the spelling.", text)
}

func TestGenerator_SimilarArtists_WordMatch(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT name FROM artists ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("Iron Maiden").
			AddRow("The Iron Giants").
			AddRow("U2"))

	text := gen.SimilarArtists(context.Background(), "iron fist")

	assert.Equal(t,
		"Sorry, I couldn't find an artist matching 'iron fist'\n\nDid you mean one of these?\n• Iron Maiden\n• The Iron Giants\n",
		text)
}

func TestGenerator_SimilarArtists_ShortWordsIgnored(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT name FROM artists ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("U2"))

	text := gen.SimilarArtists(context.Background(), "u2")

	assert.Equal(t, "Sorry, I couldn't find an artist matching 'u2'. Try another artist name or check the spelling.", text)
}

func TestGenerator_Generate_RoutesByReportType(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT g.name, COUNT\(t.track_id\)`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).AddRow("Rock", 1297))

	text := gen.Generate(context.Background(), intent.Entities{
		ReportType: intent.ReportGenre,
		Limit:      5,
	})

	assert.Contains(t, text, "Top 5 Genres with Most Tracks:")
}

func TestGenerator_Generate_UnknownTypeFallsBackToArtistTracks(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT ar.name, COUNT\(t.track_id\)`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).AddRow("U2", 135))

	text := gen.Generate(context.Background(), intent.Entities{
		ReportType: "something-new",
		Limit:      5,
	})

	assert.Contains(t, text, "Top 5 Artists with Most Tracks:")
}

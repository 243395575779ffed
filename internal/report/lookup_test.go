// internal/report/lookup_test.go
package report

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func trackRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"name", "artist", "album", "genre", "composer", "milliseconds", "bytes", "unit_price"})
}

func TestGenerator_SongInfo_SingleMatch(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`WHERE LOWER\(t.name\) LIKE \$1`).
		WithArgs("%mofo%").
		WillReturnRows(trackRows().
			AddRow("Mofo", "U2", "Pop", "Rock", "Bono", 228919, 7520631, 0.99))

	text := gen.SongInfo(context.Background(), "Mofo")

	assert.Equal(t,
		"**Mofo**\n\nArtist: U2\nAlbum: Pop\nGenre: Rock\nComposer: Bono\nDuration: 3:48\n",
		text)
}

func TestGenerator_SongInfo_OmitsEmptyComposer(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`WHERE LOWER\(t.name\) LIKE \$1`).
		WithArgs("%mofo%").
		WillReturnRows(trackRows().
			AddRow("Mofo", "U2", "Pop", "Rock", nil, 228919, 7520631, 0.99))

	text := gen.SongInfo(context.Background(), "Mofo")

	assert.NotContains(t, text, "Composer:")
}

func TestGenerator_SongInfo_MultipleMatchesCapped(t *testing.T) {
	gen, mock := setupGenerator(t)

	rows := trackRows()
	for i := 0; i < 7; i++ {
		rows.AddRow("One", "U2", "Achtung Baby", "Rock", nil, 276349, 9158766, 0.99)
	}
	mock.ExpectQuery(`WHERE LOWER\(t.name\) LIKE \$1`).
		WithArgs("%one%").
		WillReturnRows(rows)

	text := gen.SongInfo(context.Background(), "One")

	assert.Contains(t, text, "I found multiple tracks matching 'One':")
	assert.Contains(t, text, "• One by U2 (Album: Achtung Baby)")
	assert.Contains(t, text, "And 2 more matches.")
}

func TestGenerator_SongInfo_NoMatch(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`WHERE LOWER\(t.name\) LIKE \$1`).
		WithArgs("%nothing%").
		WillReturnRows(trackRows())

	text := gen.SongInfo(context.Background(), "nothing")

	assert.Equal(t, "I couldn't find any song matching 'nothing' in our database.", text)
}

func TestGenerator_TrackByArtist_WithAlbumPosition(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`WHERE LOWER\(t.name\) LIKE \$1 AND LOWER\(ar.name\) LIKE \$2`).
		WithArgs("%mofo%", "%u2%").
		WillReturnRows(trackRows().
			AddRow("Mofo", "U2", "Pop", "Rock", "Bono", 228919, 7520631, 0.99))
	mock.ExpectQuery(`SELECT t.name\s+FROM tracks t\s+JOIN albums al`).
		WithArgs("Pop").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("Discotheque").
			AddRow("Do You Feel Loved").
			AddRow("Mofo"))

	text := gen.TrackByArtist(context.Background(), "Mofo", "U2")

	assert.Contains(t, text, "**Mofo** by U2")
	assert.Contains(t, text, "Price: $0.99")
	assert.Contains(t, text, "Track #3 on the album")
}

func TestGenerator_TrackByArtist_NoMatch(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`WHERE LOWER\(t.name\) LIKE \$1 AND LOWER\(ar.name\) LIKE \$2`).
		WithArgs("%mofo%", "%queen%").
		WillReturnRows(trackRows())

	text := gen.TrackByArtist(context.Background(), "Mofo", "Queen")

	assert.Equal(t, "I couldn't find a track called 'Mofo' by 'Queen'.", text)
}

func TestGenerator_AlbumTracks(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT al.album_id, al.title, ar.name`).
		WithArgs("%pop%").
		WillReturnRows(sqlmock.NewRows([]string{"album_id", "title", "name"}).
			AddRow(224, "Pop", "U2"))
	mock.ExpectQuery(`SELECT name, milliseconds\s+FROM tracks`).
		WithArgs(224).
		WillReturnRows(sqlmock.NewRows([]string{"name", "milliseconds"}).
			AddRow("Discotheque", 319707).
			AddRow("Mofo", 228919))

	text := gen.AlbumTracks(context.Background(), "pop")

	assert.Equal(t, "**Pop** by U2\n\n• Discotheque (5:19)\n• Mofo (3:48)\n", text)
}

func TestGenerator_AlbumTracks_UnknownAlbum(t *testing.T) {
	gen, mock := setupGenerator(t)

	mock.ExpectQuery(`SELECT al.album_id, al.title, ar.name`).
		WithArgs("%nevermind%").
		WillReturnRows(sqlmock.NewRows([]string{"album_id", "title", "name"}))

	text := gen.AlbumTracks(context.Background(), "nevermind")

	assert.Equal(t, "I couldn't find any album matching 'nevermind' in our database.", text)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "3:48", formatDuration(228919))
	assert.Equal(t, "5:19", formatDuration(319707))
	assert.Equal(t, "0:05", formatDuration(5400))
}

// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	commonerrors "chinook-assistant/internal/common/errors"
)

// Store provides read-only access to the music reference data. All name
// matching is case-insensitive; nothing in this system ever writes to the
// catalog tables.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the reference store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// TopArtistsByTracks returns the artists with the most tracks, descending.
func (s *Store) TopArtistsByTracks(ctx context.Context, limit int) ([]NameCount, error) {
	const query = `
		SELECT ar.name, COUNT(t.track_id)
		FROM tracks t
		JOIN albums al ON t.album_id = al.album_id
		JOIN artists ar ON al.artist_id = ar.artist_id
		GROUP BY ar.name
		ORDER BY COUNT(t.track_id) DESC
		LIMIT $1`
	return s.queryNameCounts(ctx, query, limit)
}

// TopArtistsByAlbums returns the artists with the most albums, descending.
func (s *Store) TopArtistsByAlbums(ctx context.Context, limit int) ([]NameCount, error) {
	const query = `
		SELECT ar.name, COUNT(al.album_id)
		FROM albums al
		JOIN artists ar ON al.artist_id = ar.artist_id
		GROUP BY ar.name
		ORDER BY COUNT(al.album_id) DESC
		LIMIT $1`
	return s.queryNameCounts(ctx, query, limit)
}

// TopGenres returns the genres with the most tracks, descending.
func (s *Store) TopGenres(ctx context.Context, limit int) ([]NameCount, error) {
	const query = `
		SELECT g.name, COUNT(t.track_id)
		FROM tracks t
		JOIN genres g ON t.genre_id = g.genre_id
		GROUP BY g.name
		ORDER BY COUNT(t.track_id) DESC
		LIMIT $1`
	return s.queryNameCounts(ctx, query, limit)
}

// TopAlbums returns the albums with the most tracks, descending.
func (s *Store) TopAlbums(ctx context.Context, limit int) ([]AlbumRanking, error) {
	const query = `
		SELECT al.title, ar.name, COUNT(t.track_id)
		FROM tracks t
		JOIN albums al ON t.album_id = al.album_id
		JOIN artists ar ON al.artist_id = ar.artist_id
		GROUP BY al.title, ar.name
		ORDER BY COUNT(t.track_id) DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []AlbumRanking
	for rows.Next() {
		var r AlbumRanking
		if err := rows.Scan(&r.Title, &r.Artist, &r.TrackCount); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ArtistNames returns artist names in lexicographic order, capped at limit.
func (s *Store) ArtistNames(ctx context.Context, limit int) ([]string, error) {
	const query = `SELECT name FROM artists ORDER BY name LIMIT $1`
	return s.queryNames(ctx, query, limit)
}

// AllArtistNames returns every artist name in lexicographic order. Used by the
// similarity suggestion fallback.
func (s *Store) AllArtistNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM artists ORDER BY name`
	return s.queryNames(ctx, query)
}

// CountArtists returns the total number of artists in the catalog.
func (s *Store) CountArtists(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&n); err != nil {
		return 0, commonerrors.NewStoreAccessError(err)
	}
	return n, nil
}

// FindArtists returns artists whose name contains the search term,
// case-insensitive, in id order.
func (s *Store) FindArtists(ctx context.Context, name string) ([]Artist, error) {
	const query = `
		SELECT artist_id, name FROM artists
		WHERE LOWER(name) LIKE $1
		ORDER BY artist_id`

	rows, err := s.db.QueryContext(ctx, query, contains(name))
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ArtistOverview returns album and track counts for one artist. The joins mean
// an artist with no albums yields no row; callers get nil, not an error.
func (s *Store) ArtistOverview(ctx context.Context, artistID int) (*ArtistOverview, error) {
	const query = `
		SELECT ar.name, COUNT(DISTINCT al.album_id), COUNT(t.track_id)
		FROM artists ar
		JOIN albums al ON ar.artist_id = al.artist_id
		JOIN tracks t ON al.album_id = t.album_id
		WHERE ar.artist_id = $1
		GROUP BY ar.name`

	var o ArtistOverview
	err := s.db.QueryRowContext(ctx, query, artistID).Scan(&o.Name, &o.AlbumCount, &o.TrackCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	return &o, nil
}

// ArtistName returns the name for an artist id.
func (s *Store) ArtistName(ctx context.Context, artistID int) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM artists WHERE artist_id = $1`, artistID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", commonerrors.NewStoreAccessError(err)
	}
	return name, nil
}

// ArtistAlbums returns the artist's albums with per-album track counts, sorted
// by title.
func (s *Store) ArtistAlbums(ctx context.Context, artistID int) ([]AlbumCount, error) {
	const query = `
		SELECT al.title, COUNT(t.track_id)
		FROM albums al
		LEFT JOIN tracks t ON al.album_id = t.album_id
		WHERE al.artist_id = $1
		GROUP BY al.title
		ORDER BY al.title`

	rows, err := s.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []AlbumCount
	for rows.Next() {
		var a AlbumCount
		if err := rows.Scan(&a.Title, &a.TrackCount); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ArtistTotalTracks counts all tracks across the artist's albums.
func (s *Store) ArtistTotalTracks(ctx context.Context, artistID int) (int, error) {
	const query = `
		SELECT COUNT(t.track_id)
		FROM tracks t
		JOIN albums al ON t.album_id = al.album_id
		WHERE al.artist_id = $1`

	var n int
	if err := s.db.QueryRowContext(ctx, query, artistID).Scan(&n); err != nil {
		return 0, commonerrors.NewStoreAccessError(err)
	}
	return n, nil
}

// ArtistGenres returns the artist's genres ranked by track count, descending.
func (s *Store) ArtistGenres(ctx context.Context, artistID int) ([]NameCount, error) {
	const query = `
		SELECT g.name, COUNT(t.track_id)
		FROM genres g
		JOIN tracks t ON g.genre_id = t.genre_id
		JOIN albums al ON t.album_id = al.album_id
		WHERE al.artist_id = $1
		GROUP BY g.name
		ORDER BY COUNT(t.track_id) DESC`
	return s.queryNameCounts(ctx, query, artistID)
}

// SearchTracks returns tracks whose name contains the search term.
func (s *Store) SearchTracks(ctx context.Context, name string) ([]TrackDetail, error) {
	const query = trackDetailSelect + `
		WHERE LOWER(t.name) LIKE $1
		ORDER BY t.track_id`
	return s.queryTrackDetails(ctx, query, contains(name))
}

// SearchTracksByArtist returns tracks matching both a track-name and an
// artist-name substring.
func (s *Store) SearchTracksByArtist(ctx context.Context, track, artist string) ([]TrackDetail, error) {
	const query = trackDetailSelect + `
		WHERE LOWER(t.name) LIKE $1 AND LOWER(ar.name) LIKE $2
		ORDER BY t.track_id`
	return s.queryTrackDetails(ctx, query, contains(track), contains(artist))
}

// FindAlbum returns the first album whose title contains the search term, or
// nil when no album matches.
func (s *Store) FindAlbum(ctx context.Context, title string) (*AlbumInfo, error) {
	const query = `
		SELECT al.album_id, al.title, ar.name
		FROM albums al
		JOIN artists ar ON al.artist_id = ar.artist_id
		WHERE LOWER(al.title) LIKE $1
		ORDER BY al.album_id
		LIMIT 1`

	var a AlbumInfo
	err := s.db.QueryRowContext(ctx, query, contains(title)).Scan(&a.ID, &a.Title, &a.Artist)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	return &a, nil
}

// AlbumTracks returns an album's tracks in album order. The catalog carries no
// explicit track-number column; track id order is the album order.
func (s *Store) AlbumTracks(ctx context.Context, albumID int) ([]TrackListing, error) {
	const query = `
		SELECT name, milliseconds
		FROM tracks
		WHERE album_id = $1
		ORDER BY track_id`

	rows, err := s.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []TrackListing
	for rows.Next() {
		var t TrackListing
		if err := rows.Scan(&t.Name, &t.Milliseconds); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AlbumTrackNames returns the ordered track names of the album with the given
// title. Used to determine a track's ordinal position within its album.
func (s *Store) AlbumTrackNames(ctx context.Context, albumTitle string) ([]string, error) {
	const query = `
		SELECT t.name
		FROM tracks t
		JOIN albums al ON t.album_id = al.album_id
		WHERE al.title = $1
		ORDER BY t.track_id`
	return s.queryNames(ctx, query, albumTitle)
}

// RawQuery executes an arbitrary read statement and returns column names plus
// stringified rows. Callers are responsible for running the statement through
// the read-only guard first.
func (s *Store) RawQuery(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, commonerrors.NewStoreAccessError(err)
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, commonerrors.NewStoreAccessError(err)
		}
		vals := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				vals[i] = v.String
			}
		}
		out = append(out, vals)
	}
	return cols, out, rows.Err()
}

const trackDetailSelect = `
		SELECT t.name, ar.name, al.title, g.name, t.composer, t.milliseconds, t.bytes, t.unit_price
		FROM tracks t
		JOIN albums al ON t.album_id = al.album_id
		JOIN artists ar ON al.artist_id = ar.artist_id
		JOIN genres g ON t.genre_id = g.genre_id`

func (s *Store) queryTrackDetails(ctx context.Context, query string, args ...interface{}) ([]TrackDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []TrackDetail
	for rows.Next() {
		var t TrackDetail
		var composer sql.NullString
		if err := rows.Scan(&t.Name, &t.Artist, &t.Album, &t.Genre, &composer, &t.Milliseconds, &t.Bytes, &t.UnitPrice); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		t.Composer = composer.String
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) queryNameCounts(ctx context.Context, query string, args ...interface{}) ([]NameCount, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

func (s *Store) queryNames(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, commonerrors.NewStoreAccessError(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, commonerrors.NewStoreAccessError(err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func contains(term string) string {
	return fmt.Sprintf("%%%s%%", strings.ToLower(term))
}

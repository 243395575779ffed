// internal/report/lookup.go
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chinook-assistant/internal/catalog"
)

const multipleMatchLimit = 5

func formatDuration(milliseconds int) string {
	minutes := milliseconds / 60000
	seconds := (milliseconds % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'g', -1, 64)
}

// SongInfo answers "tell me about the song X" questions. One match gets the
// detailed card; several matches get a short disambiguation list.
func (g *Generator) SongInfo(ctx context.Context, songName string) string {
	tracks, err := g.store.SearchTracks(ctx, songName)
	if err != nil {
		g.logger.WithError(err).Error("song lookup failed", nil)
		return fmt.Sprintf("I encountered an error while looking up information about the song '%s'.", songName)
	}
	if len(tracks) == 0 {
		return fmt.Sprintf("I couldn't find any song matching '%s' in our database.", songName)
	}

	if len(tracks) == 1 {
		return trackCard(tracks[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found multiple tracks matching '%s':\n\n", songName)
	for i, track := range tracks {
		if i == multipleMatchLimit {
			break
		}
		fmt.Fprintf(&b, "• %s by %s (Album: %s)\n", track.Name, track.Artist, track.Album)
	}
	if len(tracks) > multipleMatchLimit {
		fmt.Fprintf(&b, "\nAnd %d more matches.", len(tracks)-multipleMatchLimit)
	}
	return b.String()
}

func trackCard(track catalog.TrackDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", track.Name)
	fmt.Fprintf(&b, "Artist: %s\n", track.Artist)
	fmt.Fprintf(&b, "Album: %s\n", track.Album)
	fmt.Fprintf(&b, "Genre: %s\n", track.Genre)
	if strings.TrimSpace(track.Composer) != "" {
		fmt.Fprintf(&b, "Composer: %s\n", track.Composer)
	}
	fmt.Fprintf(&b, "Duration: %s\n", formatDuration(track.Milliseconds))
	return b.String()
}

// TrackByArtist answers "tell me about X by Y". Both terms constrain the
// search, so the first match is taken as the answer.
func (g *Generator) TrackByArtist(ctx context.Context, trackName, artistName string) string {
	tracks, err := g.store.SearchTracksByArtist(ctx, trackName, artistName)
	if err != nil {
		g.logger.WithError(err).Error("track-by-artist lookup failed", nil)
		return fmt.Sprintf("I encountered an error while looking up information about '%s' by '%s'.", trackName, artistName)
	}
	if len(tracks) == 0 {
		return fmt.Sprintf("I couldn't find a track called '%s' by '%s'.", trackName, artistName)
	}

	track := tracks[0]

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** by %s\n\n", track.Name, track.Artist)
	fmt.Fprintf(&b, "Album: %s\n", track.Album)
	fmt.Fprintf(&b, "Genre: %s\n", track.Genre)
	if strings.TrimSpace(track.Composer) != "" {
		fmt.Fprintf(&b, "Composer: %s\n", track.Composer)
	}
	fmt.Fprintf(&b, "Duration: %s\n", formatDuration(track.Milliseconds))
	fmt.Fprintf(&b, "Price: $%s\n", formatPrice(track.UnitPrice))

	// Position within the album, when it can be resolved.
	names, err := g.store.AlbumTrackNames(ctx, track.Album)
	if err == nil {
		for i, name := range names {
			if strings.EqualFold(name, track.Name) {
				fmt.Fprintf(&b, "Track #%d on the album\n", i+1)
				break
			}
		}
	}

	return b.String()
}

// AlbumTracks lists an album's tracks in running order with durations.
func (g *Generator) AlbumTracks(ctx context.Context, albumName string) string {
	album, err := g.store.FindAlbum(ctx, albumName)
	if err != nil {
		g.logger.WithError(err).Error("album lookup failed", nil)
		return fmt.Sprintf("I encountered an error while looking up tracks for the album '%s'.", albumName)
	}
	if album == nil {
		return fmt.Sprintf("I couldn't find any album matching '%s' in our database.", albumName)
	}

	tracks, err := g.store.AlbumTracks(ctx, album.ID)
	if err != nil {
		g.logger.WithError(err).Error("album tracks lookup failed", nil)
		return fmt.Sprintf("I encountered an error while looking up tracks for the album '%s'.", albumName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** by %s\n\n", album.Title, album.Artist)
	if len(tracks) == 0 {
		b.WriteString("No tracks found for this album.")
		return b.String()
	}
	for _, track := range tracks {
		fmt.Fprintf(&b, "• %s (%s)\n", track.Name, formatDuration(track.Milliseconds))
	}
	return b.String()
}

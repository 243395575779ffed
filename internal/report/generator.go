// internal/report/generator.go

// Package report renders the deterministic catalog reports. Every generator
// returns user-facing text even when the database misbehaves; errors are
// logged and replaced with an apology so the conversation never breaks.
package report

import (
	"context"
	"fmt"
	"strings"

	"chinook-assistant/internal/catalog"
	"chinook-assistant/internal/common/logger"
	"chinook-assistant/internal/intent"
)

type Generator struct {
	store  *catalog.Store
	logger logger.Logger
}

func NewGenerator(store *catalog.Store, log logger.Logger) *Generator {
	return &Generator{
		store: store,
		logger: log.With(map[string]interface{}{
			"component": "report-generator",
		}),
	}
}

// Generate routes classified entities to the matching generator. Unrecognized
// report types fall back to the artist-tracks report.
func (g *Generator) Generate(ctx context.Context, entities intent.Entities) string {
	switch {
	case entities.ReportType == intent.ReportArtistSpecific && entities.ArtistName != "":
		return g.ArtistSpecific(ctx, entities.ArtistName)
	case entities.ReportType == intent.ReportArtistList:
		return g.ArtistList(ctx, entities.Limit)
	case entities.ReportType == intent.ReportArtistTracks:
		return g.ArtistTracks(ctx, entities.Limit)
	case entities.ReportType == intent.ReportArtistAlbums:
		return g.ArtistAlbums(ctx, entities.Limit)
	case entities.ReportType == intent.ReportGenre:
		return g.Genres(ctx, entities.Limit)
	case entities.ReportType == intent.ReportAlbum:
		return g.Albums(ctx, entities.Limit)
	default:
		return g.ArtistTracks(ctx, entities.Limit)
	}
}

func (g *Generator) ArtistList(ctx context.Context, limit int) string {
	names, err := g.store.ArtistNames(ctx, limit)
	if err != nil {
		g.logger.WithError(err).Error("artist list report failed", nil)
		return "Sorry, I couldn't retrieve the list of artists right now."
	}
	total, err := g.store.CountArtists(ctx)
	if err != nil {
		g.logger.WithError(err).Error("artist count failed", nil)
		return "Sorry, I couldn't retrieve the list of artists right now."
	}

	shown := limit
	if len(names) < shown {
		shown = len(names)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Artists in the database (showing %d of %d):\n", shown, total)
	for _, name := range names {
		fmt.Fprintf(&b, "• %s\n", name)
	}
	if len(names) < total {
		fmt.Fprintf(&b, "\n(Add 'show all' to your request to see all %d artists)", total)
	}
	return b.String()
}

func (g *Generator) ArtistTracks(ctx context.Context, limit int) string {
	rows, err := g.store.TopArtistsByTracks(ctx, limit)
	if err != nil {
		g.logger.WithError(err).Error("artist tracks report failed", nil)
		return "Sorry, I couldn't retrieve the artist tracks report right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Artists with Most Tracks:\n", limit)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %d tracks\n", row.Name, row.Count)
	}
	return b.String()
}

func (g *Generator) ArtistAlbums(ctx context.Context, limit int) string {
	rows, err := g.store.TopArtistsByAlbums(ctx, limit)
	if err != nil {
		g.logger.WithError(err).Error("artist albums report failed", nil)
		return "Sorry, I couldn't retrieve the artist albums report right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Artists with Most Albums:\n", limit)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %d albums\n", row.Name, row.Count)
	}
	return b.String()
}

func (g *Generator) Genres(ctx context.Context, limit int) string {
	rows, err := g.store.TopGenres(ctx, limit)
	if err != nil {
		g.logger.WithError(err).Error("genre report failed", nil)
		return "Sorry, I couldn't retrieve the genre report right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Genres with Most Tracks:\n", limit)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %d tracks\n", row.Name, row.Count)
	}
	return b.String()
}

func (g *Generator) Albums(ctx context.Context, limit int) string {
	rows, err := g.store.TopAlbums(ctx, limit)
	if err != nil {
		g.logger.WithError(err).Error("album report failed", nil)
		return "Sorry, I couldn't retrieve the album report right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Albums with Most Tracks:\n", limit)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s by %s: %d tracks\n", row.Title, row.Artist, row.TrackCount)
	}
	return b.String()
}

// ArtistSpecific builds the per-artist report. Exact name matches win over
// substring matches; a miss turns into spelling suggestions.
func (g *Generator) ArtistSpecific(ctx context.Context, artistName string) string {
	matches, err := g.store.FindArtists(ctx, artistName)
	if err != nil {
		g.logger.WithError(err).Error("artist lookup failed", nil)
		return "Sorry, I couldn't retrieve the artist report right now."
	}
	if len(matches) == 0 {
		return g.SimilarArtists(ctx, artistName)
	}

	chosen := matches[0]
	for _, m := range matches {
		if strings.EqualFold(m.Name, artistName) {
			chosen = m
			break
		}
	}

	overview, err := g.store.ArtistOverview(ctx, chosen.ID)
	if err != nil {
		g.logger.WithError(err).Error("artist overview failed", nil)
		return "Sorry, I couldn't retrieve the artist report right now."
	}
	if overview == nil {
		return fmt.Sprintf("Artist Report: %s\nThis artist has no albums or tracks in the database.", chosen.Name)
	}

	albums, err := g.store.ArtistAlbums(ctx, chosen.ID)
	if err != nil {
		g.logger.WithError(err).Error("artist albums lookup failed", nil)
		return "Sorry, I couldn't retrieve the artist report right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Artist Report: %s\n", overview.Name)
	fmt.Fprintf(&b, "Total Albums: %d\n", overview.AlbumCount)
	fmt.Fprintf(&b, "Total Tracks: %d\n\n", overview.TrackCount)

	if len(albums) > 0 {
		b.WriteString("Albums:\n")
		for _, album := range albums {
			fmt.Fprintf(&b, "• %s: %d tracks\n", album.Title, album.TrackCount)
		}
	}
	return b.String()
}

// internal/intent/models.go
package intent

// Intents recognized by both the rule-based and the model-backed classifier.
const (
	IntentReport   = "report"
	IntentGreeting = "greeting"
	IntentHelp     = "help"
	IntentUnknown  = "unknown"
)

// Report types the generators know how to render.
const (
	ReportArtistTracks   = "artist_tracks"
	ReportArtistAlbums   = "artist_albums"
	ReportGenre          = "genre"
	ReportAlbum          = "album"
	ReportArtistSpecific = "artist_specific"
	ReportArtistList     = "artist_list"
)

// DefaultLimit applies whenever a question names no result count.
const DefaultLimit = 5

// ArtistListLimit covers the full artists table.
const ArtistListLimit = 275

// Entities carries the structured slots pulled out of a question.
// ArtistName is empty when no artist was mentioned.
type Entities struct {
	ReportType string `json:"report_type"`
	Limit      int    `json:"limit"`
	ArtistName string `json:"artist_name"`
}

// Query types returned by the model-backed query analyzer.
const (
	QuerySongInfo    = "song_info"
	QueryArtistInfo  = "artist_info"
	QueryAlbumTracks = "album_tracks"
	QueryTopArtists  = "top_artists"
	QueryTopGenres   = "top_genres"
	QueryUnknown     = "unknown"
)

// QueryAnalysis is the model's reading of what a question asks for.
type QueryAnalysis struct {
	QueryType  string `json:"query_type"`
	SongName   string `json:"song_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name"`
	Limit      int    `json:"limit"`
}

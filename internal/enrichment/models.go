// internal/enrichment/models.go

// Package enrichment owns the asynchronous artist-lookup lifecycle: trigger,
// result delivery, and polling. Results are keyed by lowercased artist name
// and the latest delivery for a name always wins.
package enrichment

// Lifecycle states of a lookup entry.
const (
	StatusPending  = "pending"
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// AlbumSummary is one album in a successful lookup result.
type AlbumSummary struct {
	Title      string `json:"title"`
	TrackCount int    `json:"track_count"`
}

// Entry is the stored state of one artist lookup.
type Entry struct {
	Status      string         `json:"status"`
	Name        string         `json:"name,omitempty"`
	Albums      []AlbumSummary `json:"albums,omitempty"`
	TotalTracks int            `json:"total_tracks,omitempty"`
	MainGenres  []string       `json:"main_genres,omitempty"`
	Message     string         `json:"message,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
}

// CallbackPayload is what the lookup worker posts back when it finishes.
// ArtistName carries the original search term; Name the catalog spelling.
type CallbackPayload struct {
	Status      string         `json:"status"`
	ArtistName  string         `json:"artist_name"`
	Name        string         `json:"name,omitempty"`
	ArtistID    int            `json:"artist_id,omitempty"`
	Albums      []AlbumSummary `json:"albums,omitempty"`
	TotalTracks int            `json:"total_tracks,omitempty"`
	MainGenres  []string       `json:"main_genres,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// internal/catalog/models.go
package catalog

// Artist is a row from the artists table.
type Artist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NameCount is a generic aggregation row: a dimension name and how many
// tracks/albums fall under it.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AlbumCount pairs an album title with its track count.
type AlbumCount struct {
	Title      string `json:"title"`
	TrackCount int    `json:"track_count"`
}

// AlbumRanking is a row of the top-albums report.
type AlbumRanking struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	TrackCount int    `json:"track_count"`
}

// ArtistOverview summarizes an artist's footprint in the catalog.
type ArtistOverview struct {
	Name       string `json:"name"`
	AlbumCount int    `json:"album_count"`
	TrackCount int    `json:"track_count"`
}

// TrackDetail is the full joined view of a track used by song lookups.
type TrackDetail struct {
	Name         string  `json:"name"`
	Artist       string  `json:"artist"`
	Album        string  `json:"album"`
	Genre        string  `json:"genre"`
	Composer     string  `json:"composer,omitempty"`
	Milliseconds int     `json:"milliseconds"`
	Bytes        int     `json:"bytes"`
	UnitPrice    float64 `json:"unit_price"`
}

// AlbumInfo identifies an album together with its artist.
type AlbumInfo struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// TrackListing is one entry of an album's ordered track list.
type TrackListing struct {
	Name         string `json:"name"`
	Milliseconds int    `json:"milliseconds"`
}

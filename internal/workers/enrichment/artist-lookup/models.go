// internal/workers/enrichment/artist-lookup/models.go
package artistlookup

import "chinook-assistant/internal/enrichment"

type Input struct {
	ArtistName string `json:"artist_name"`
}

// Output doubles as the callback body posted to the assistant, so the job
// variables and the webhook payload never drift apart.
type Output = enrichment.CallbackPayload

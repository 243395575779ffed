// internal/enrichment/schema.go
package enrichment

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "chinook-assistant/internal/common/errors"
)

const callbackSchema = `{
	"type": "object",
	"required": ["artist_name"],
	"properties": {
		"artist_name": {"type": "string", "minLength": 1},
		"status": {"type": "string", "enum": ["success", "not_found", "error"]},
		"name": {"type": "string"},
		"artist_id": {"type": "integer"},
		"albums": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title", "track_count"],
				"properties": {
					"title": {"type": "string"},
					"track_count": {"type": "integer", "minimum": 0}
				}
			}
		},
		"total_tracks": {"type": "integer", "minimum": 0},
		"main_genres": {"type": "array", "items": {"type": "string"}},
		"message": {"type": "string"}
	}
}`

var callbackSchemaLoader = gojsonschema.NewStringLoader(callbackSchema)

// ValidateCallback checks an inbound worker callback before it can touch the
// store. A missing artist_name would otherwise corrupt the keyspace.
func ValidateCallback(payload []byte) error {
	result, err := gojsonschema.Validate(callbackSchemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return commonerrors.NewCallbackInvalidError(err)
	}
	if !result.Valid() {
		var details string
		for _, desc := range result.Errors() {
			details += fmt.Sprintf("%s; ", desc)
		}
		return commonerrors.NewCallbackInvalidError(fmt.Errorf("schema validation failed: %s", details))
	}
	return nil
}

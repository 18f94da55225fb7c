package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairhuur/models"
	"fairhuur/services"
	"fairhuur/utils"
)

func quietLogger() *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LogOptions{Writer: io.Discard})
}

func listingIDs(listings []*models.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, string(l.ID))
	}
	return out
}

func TestDecodeFiltersInactiveAndDuplicates(t *testing.T) {
	doc := `{"listings": [
		{"id": 1, "title": "Loft", "price": "1200", "active": true},
		null,
		{"id": "2", "active": false},
		{"id": "3", "active": 0},
		{"id": "4", "active": null, "sqm": 55},
		{"id": 1, "title": "dup"},
		5,
		{"title": "zonder id"},
		{"id": "6", "active": "ja"}
	]}`

	got, err := NewDecoder(quietLogger()).Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "4", "", "6"}, listingIDs(got))
	assert.Equal(t, models.Text("Loft"), got[0].Title)
	assert.Equal(t, "1200", got[0].Price)
	assert.Equal(t, float64(55), got[1].Sqm)
}

func TestDecodeKeepsOutOfRangeNumbers(t *testing.T) {
	doc := `{"listings": [
		{"id": "1", "price": 1e400, "sqm": 40},
		{"id": "2", "price": 900, "active": 1e400}
	]}`

	got, err := NewDecoder(quietLogger()).Decode([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, listingIDs(got))

	_, ok := services.CoerceNumber(got[0].Price)
	assert.False(t, ok)
	assert.Equal(t, float64(40), got[0].Sqm)
	assert.Equal(t, float64(900), got[1].Price)
}

func TestDecodeMissingListings(t *testing.T) {
	for _, doc := range []string{`{}`, `{"listings": null}`, `{"listings": false}`, `[1, 2]`} {
		got, err := NewDecoder(quietLogger()).Decode([]byte(doc))
		require.NoError(t, err, doc)
		assert.Empty(t, got, doc)
	}
}

func TestDecodeRejectsBadDocuments(t *testing.T) {
	for _, doc := range []string{`not json`, `{"listings": {"id": 1}}`, `{"listings": "veel"}`} {
		_, err := NewDecoder(quietLogger()).Decode([]byte(doc))
		assert.True(t, errors.Is(err, errInvalidDocument), "doc %s: got %v", doc, err)
	}
}

type staticFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *staticFetcher) Fetch(context.Context) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func TestDocumentSourceLoad(t *testing.T) {
	src := NewDocumentSource(&staticFetcher{data: []byte(`{"listings":[{"id":"a"},{"id":"b","active":false}]}`)}, quietLogger())

	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, listingIDs(got))
}

func TestDocumentSourcePropagatesFetchError(t *testing.T) {
	src := NewDocumentSource(&staticFetcher{err: ErrNotFound}, quietLogger())

	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steebus/notion-book-fetch/internal/entity"
)

const searchPattern = `=~^https://openlibrary\.org/search\.json`

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient("notion-book-fetch-test", 100)
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestClient_Lookup_Success(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{
			"numFound": 1,
			"docs": [{
				"key": "/works/OL893415W",
				"title": "Dune",
				"author_name": ["Frank Herbert"],
				"isbn": ["0441013597", "9780441013593"],
				"subject": ["Fiction", "Dune (Imaginary place)"],
				"first_publish_year": 1965,
				"number_of_pages_median": 412,
				"cover_i": 11481354
			}]
		}`))

	meta, err := c.Lookup(context.Background(), "Dune")
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Dune", meta.Title)
	assert.Equal(t, []string{"Frank Herbert"}, meta.Authors)
	assert.Equal(t, []string{"Fiction", "Dune (Imaginary place)"}, meta.Categories)
	assert.Equal(t, "9780441013593", meta.ISBN)
	assert.Equal(t, 412, meta.PageCount)
	assert.Zero(t, meta.Rating)
	assert.Equal(t, "https://openlibrary.org/works/OL893415W", meta.InfoLink)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/11481354-L.jpg", meta.ImageLink)
	assert.Equal(t, &entity.PublishedDate{Start: "1965-01-01"}, meta.PublishedDate)
	assert.Equal(t, entity.StatusFiction, meta.FictionStatus)
	assert.Equal(t, "", meta.SeriesName)
}

func TestClient_Lookup_SeriesFieldFallback(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{
			"docs": [{
				"title": "The Eye of the World",
				"series": ["The Wheel of Time", "other"]
			}]
		}`))

	meta, err := c.Lookup(context.Background(), "eye of the world")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "The Wheel of Time", meta.SeriesName)
}

func TestClient_Lookup_PatternBeatsSeriesField(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{
			"docs": [{
				"title": "The Broken Earth Trilogy",
				"series": ["ignored"]
			}]
		}`))

	meta, err := c.Lookup(context.Background(), "broken earth")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "Broken Earth", meta.SeriesName)
}

func TestClient_Lookup_NoDocs(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{"numFound": 0, "docs": []}`))

	meta, err := c.Lookup(context.Background(), "no such book")
	assert.NoError(t, err)
	assert.Nil(t, meta)
}

func TestClient_Lookup_NonSuccessStatusIsNoMatch(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "unavailable"))

	meta, err := c.Lookup(context.Background(), "Dune")
	assert.NoError(t, err)
	assert.Nil(t, meta)
}

func TestClient_Lookup_TransportError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewErrorResponder(errors.New("connection reset")))

	meta, err := c.Lookup(context.Background(), "Dune")
	assert.Error(t, err)
	assert.Nil(t, meta)
}

func TestClient_Lookup_MissingFieldsDegradeGracefully(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, searchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{"docs": [{"title": "Bare"}]}`))

	meta, err := c.Lookup(context.Background(), "bare")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "Bare", meta.Title)
	assert.Empty(t, meta.Authors)
	assert.Empty(t, meta.ISBN)
	assert.Empty(t, meta.InfoLink)
	assert.Empty(t, meta.ImageLink)
	assert.Nil(t, meta.PublishedDate)
	assert.Equal(t, entity.StatusFiction, meta.FictionStatus)
}

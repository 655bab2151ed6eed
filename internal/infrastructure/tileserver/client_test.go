package tileserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain"
)

func newTestClient(t *testing.T, sourceName, baseURL string) *client {
	t.Helper()

	source, err := domain.SourceByName(sourceName)
	require.NoError(t, err)

	c := NewClient(&config.SourceConfig{
		Name:           sourceName,
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		Source:         source,
	}, zap.NewNop())

	return c.(*client)
}

func TestListTimestamps_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/himawari/timestamps.json", r.URL.Path)
		w.Write([]byte(`[1700000000, 1700000600, 1700001200]`))
	}))
	defer server.Close()

	c := newTestClient(t, "himawari", server.URL)

	timestamps, err := c.ListTimestamps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1700000000, 1700000600, 1700001200}, timestamps)
}

func TestListTimestamps_WrappedObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/times/geocolor.json", r.URL.Path)
		w.Write([]byte(`{"timestamps": [1700000000, 1700000600]}`))
	}))
	defer server.Close()

	c := newTestClient(t, "zoom-earth", server.URL)

	timestamps, err := c.ListTimestamps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1700000000, 1700000600}, timestamps)
}

func TestListTimestamps_MalformedBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer server.Close()

	c := newTestClient(t, "himawari", server.URL)

	_, err := c.ListTimestamps(context.Background())
	assert.Error(t, err)
}

func TestListTimestamps_MissingKeyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"times": [1700000000]}`))
	}))
	defer server.Close()

	c := newTestClient(t, "zoom-earth", server.URL)

	_, err := c.ListTimestamps(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamps")
}

func TestFetchTile_ReturnsBytes(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0} // начало JPEG
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/himawari/7/52/107/1700000000.jpg", r.URL.Path)
		w.Write(payload)
	}))
	defer server.Close()

	c := newTestClient(t, "himawari", server.URL)

	body, err := c.FetchTile(context.Background(), domain.TileAddress{Zoom: 7, Col: 107, Row: 52}, 1700000000)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestFetchTile_Non200Fails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(t, "himawari", server.URL)

	_, err := c.FetchTile(context.Background(), domain.TileAddress{Zoom: 7, Col: 107, Row: 52}, 1700000000)
	assert.Error(t, err)
}

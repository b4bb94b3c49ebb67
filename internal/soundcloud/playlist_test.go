package soundcloud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/soundcloud-playlist/config"
)

func testConfig() *config.Config {
	return &config.Config{ClientID: "test_client_id", ChunkSize: 4096}
}

func newTestClient(t *testing.T, body string, status int) (*Client, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := New(testConfig(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client, &requests
}

func TestNewWithoutClientID(t *testing.T) {
	client, err := New(&config.Config{})

	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, client)
}

func TestGetPlaylistSingleTrack(t *testing.T) {
	body := `{"duration":213000,"title":"Song A","stream_url":"https://host/a"}`
	client, _ := newTestClient(t, body, http.StatusOK)

	playlist, err := client.GetPlaylist(context.Background(), "soundcloud://track/123")

	require.NoError(t, err)
	require.NotNil(t, playlist)
	assert.Equal(t, "soundcloud://track/123", playlist.Source)
	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "https://host/a?client_id=test_client_id", playlist.Tracks[0].StreamURL)
	assert.Equal(t, "Song A", playlist.Tracks[0].Title)
	assert.Equal(t, int64(213000), playlist.Tracks[0].DurationMS)
}

func TestGetPlaylistArray(t *testing.T) {
	body := `[{"duration":1000,"stream_url":"https://host/x"},{"title":"NoUrl"}]`
	client, _ := newTestClient(t, body, http.StatusOK)

	playlist, err := client.GetPlaylist(context.Background(), "soundcloud://user/42")

	require.NoError(t, err)
	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "https://host/x?client_id=test_client_id", playlist.Tracks[0].StreamURL)
}

func TestGetPlaylistUnrecognizedRequestMakesNoCall(t *testing.T) {
	client, requests := newTestClient(t, `{}`, http.StatusOK)

	playlist, err := client.GetPlaylist(context.Background(), "soundcloud://foo/123")

	assert.ErrorIs(t, err, ErrUnrecognizedRequest)
	assert.Nil(t, playlist)
	assert.Equal(t, int64(0), requests.Load())
}

func TestGetPlaylistServerError(t *testing.T) {
	client, _ := newTestClient(t, "", http.StatusInternalServerError)

	playlist, err := client.GetPlaylist(context.Background(), "soundcloud://track/123")

	assert.Error(t, err)
	assert.Nil(t, playlist)
}

func TestGetPlaylistMalformedResponse(t *testing.T) {
	// A valid prefix followed by garbage: the track parsed so far must be
	// discarded, not returned as a partial result.
	body := `[{"duration":1000,"stream_url":"https://host/x"}`
	client, _ := newTestClient(t, body, http.StatusOK)

	playlist, err := client.GetPlaylist(context.Background(), "soundcloud://playlist/9")

	assert.Error(t, err)
	assert.Nil(t, playlist)
}

func TestGetPlaylistCancelledContext(t *testing.T) {
	client, _ := newTestClient(t, `{}`, http.StatusOK)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	playlist, err := client.GetPlaylist(ctx, "soundcloud://track/123")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, playlist)
}

func TestGetPlaylistTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := New(testConfig(), WithBaseURL(server.URL))
	require.NoError(t, err)

	playlist, err := client.GetPlaylist(context.Background(), "soundcloud://track/123")

	assert.Error(t, err)
	assert.Nil(t, playlist)
	// The credential must not escape through the error message.
	assert.NotContains(t, err.Error(), "test_client_id")
}

func TestClientsRunConcurrently(t *testing.T) {
	body := `[{"duration":1000,"title":"A","stream_url":"https://host/a"},
		{"duration":2000,"title":"B","stream_url":"https://host/b"}]`
	client, _ := newTestClient(t, body, http.StatusOK)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			playlist, err := client.GetPlaylist(context.Background(), "soundcloud://user/1")
			if err == nil && len(playlist.Tracks) != 2 {
				err = assert.AnError
			}
			done <- err
		}()
	}

	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}

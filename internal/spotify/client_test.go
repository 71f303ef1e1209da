package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"samad-backend/internal/config"
	"samad-backend/internal/logger"
)

func newTestClient(t *testing.T, tokenURL, apiURL string) *Client {
	t.Helper()
	cfg := config.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     tokenURL,
		APIBaseURL:   apiURL,
	}
	return NewClient(cfg, NewMemoryTokenStore(), http.DefaultClient, logger.NewLogger())
}

func tokenHandler(counter *int32, expiresIn int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(counter, 1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": fmt.Sprintf("token-%d", atomic.LoadInt32(counter)),
			"expires_in":   expiresIn,
			"token_type":   "Bearer",
		})
	}
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	var tokenFetches int32
	tokenSrv := httptest.NewServer(tokenHandler(&tokenFetches, 3600))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"artists": map[string]interface{}{"items": []Artist{{ID: "abc", Name: "Samad"}}},
		})
	}))
	defer apiSrv.Close()

	client := newTestClient(t, tokenSrv.URL, apiSrv.URL)

	artist := client.SearchArtist(context.Background(), "Samad")
	assert.NotNil(t, artist)
	artist = client.SearchArtist(context.Background(), "Samad")
	assert.NotNil(t, artist)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenFetches), "second call should reuse the cached token")
}

func TestExpiredTokenIsRefetched(t *testing.T) {
	var tokenFetches int32
	// 60s expiry lands exactly on the validity buffer, so the token is
	// stale the moment it is stored.
	tokenSrv := httptest.NewServer(tokenHandler(&tokenFetches, 60))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"artists": map[string]interface{}{"items": []Artist{{ID: "abc"}}},
		})
	}))
	defer apiSrv.Close()

	client := newTestClient(t, tokenSrv.URL, apiSrv.URL)

	client.SearchArtist(context.Background(), "Samad")
	client.SearchArtist(context.Background(), "Samad")

	assert.Equal(t, int32(2), atomic.LoadInt32(&tokenFetches))
}

func TestMissingCredentialsFallBackWithoutError(t *testing.T) {
	cfg := config.SpotifyConfig{
		TokenURL:   "http://localhost:0",
		APIBaseURL: "http://localhost:0",
	}
	client := NewClient(cfg, NewMemoryTokenStore(), http.DefaultClient, logger.NewLogger())
	ctx := context.Background()

	assert.Nil(t, client.SearchArtist(ctx, "Samad"))
	assert.Nil(t, client.SearchTrack(ctx, "Anthem", "abc"))
	assert.Empty(t, client.GetArtistTopTracks(ctx, "abc", "NG"))
	assert.Equal(t, ArtistStats{}, client.GetArtistStats(ctx, "Samad"))
	assert.Equal(t, ArtistStats{}, client.GetArtistStatsByID(ctx, "abc"))
}

func TestUpstreamErrorFallsBack(t *testing.T) {
	var tokenFetches int32
	tokenSrv := httptest.NewServer(tokenHandler(&tokenFetches, 3600))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":429,"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer apiSrv.Close()

	client := newTestClient(t, tokenSrv.URL, apiSrv.URL)
	ctx := context.Background()

	assert.Nil(t, client.SearchArtist(ctx, "Samad"))
	assert.Empty(t, client.GetArtistTopTracks(ctx, "abc", "NG"))
	assert.Equal(t, ArtistStats{}, client.GetArtistStatsByID(ctx, "abc"))
}

func TestSearchTrackFiltersByArtist(t *testing.T) {
	var tokenFetches int32
	tokenSrv := httptest.NewServer(tokenHandler(&tokenFetches, 3600))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"tracks": {"items": [
				{"id": "t1", "name": "Anthem", "artists": [{"id": "other", "name": "Other"}]},
				{"id": "t2", "name": "Anthem", "artists": [{"id": "samad-id", "name": "Samad"}]}
			]}
		}`))
	}))
	defer apiSrv.Close()

	client := newTestClient(t, tokenSrv.URL, apiSrv.URL)

	track := client.SearchTrack(context.Background(), "Anthem", "samad-id")
	assert.NotNil(t, track)
	assert.Equal(t, "t2", track.ID)

	track = client.SearchTrack(context.Background(), "Anthem", "nobody")
	assert.Nil(t, track)
}

func TestMonthlyListenerEstimate(t *testing.T) {
	cases := []struct {
		followers int
		expected  int
	}{
		{0, 0},
		{1, 1},
		{1000, 1500},
		{15420, 23130},
	}
	for _, tc := range cases {
		artist := &Artist{}
		artist.Followers.Total = tc.followers
		stats := statsFromArtist(artist)
		assert.Equal(t, tc.expected, stats.MonthlyListeners, "followers=%d", tc.followers)
		assert.Equal(t, tc.followers, stats.Followers)
	}
}

func TestGenerateStreamingURLs(t *testing.T) {
	urls := GenerateStreamingURLs("Samad", "New Anthem", "https://open.spotify.com/track/t2")

	assert.Equal(t, "https://open.spotify.com/track/t2", urls.Spotify)
	assert.Equal(t, "https://music.apple.com/search?term=Samad%20New%20Anthem", urls.AppleMusic)
	assert.Contains(t, urls.YoutubeMusic, "music.youtube.com")
	assert.Nil(t, urls.Spinlet)

	// Path-style providers treat + as a literal plus, so spaces must be %20.
	assert.Equal(t, "https://audiomack.com/search/Samad%20New%20Anthem", urls.Audiomack)
	assert.Equal(t, "https://www.boomplay.com/search/Samad%20New%20Anthem", urls.Boomplay)
	assert.Equal(t, "https://listen.tidal.com/search/Samad%20New%20Anthem", urls.Tidal)
	assert.NotContains(t, urls.Deezer, "+")

	fallback := GenerateStreamingURLs("Samad", "New Anthem", "")
	assert.Equal(t, "https://open.spotify.com/search/Samad%20New%20Anthem", fallback.Spotify)
}

package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"samad-backend/internal/config"
	"samad-backend/internal/logger"
)

// Client talks to the Spotify Web API with a cached client-credentials
// token. Read operations never surface errors: any failure, the token fetch
// included, is logged and swallowed into the empty/zero fallback so catalog
// pages degrade to empty instead of erroring. Callers cannot tell a failed
// call apart from a genuine "not found" — that is the intended contract.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	apiBase      string

	client *http.Client
	tokens TokenStore
	logger *logger.Logger

	// refreshMu serializes token refresh so concurrent callers do not race
	// a stale token into the store.
	refreshMu sync.Mutex
}

type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
	Popularity   int               `json:"popularity"`
	Images       []Image           `json:"images"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type Track struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ExternalURLs map[string]string `json:"external_urls"`
	Artists      []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Images      []Image `json:"images"`
		ReleaseDate string  `json:"release_date"`
	} `json:"album"`
	Popularity int `json:"popularity"`
}

type ArtistStats struct {
	Followers        int `json:"followers"`
	MonthlyListeners int `json:"monthlyListeners"`
	Popularity       int `json:"popularity"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func NewClient(cfg config.SpotifyConfig, tokens TokenStore, client *http.Client, log *logger.Logger) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		apiBase:      cfg.APIBaseURL,
		client:       client,
		tokens:       tokens,
		logger:       log,
	}
}

// accessToken returns the cached token or fetches a fresh one. A fetch
// failure is a hard error here; the read operations translate it into
// their fallback values.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	cached, err := c.tokens.Get(ctx)
	if err != nil {
		c.logger.Warn("SPOTIFY", fmt.Sprintf("Token store read failed: %v", err))
	}
	if cached.IsValid() {
		return cached.Token, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while we waited on the lock.
	cached, _ = c.tokens.Get(ctx)
	if cached.IsValid() {
		return cached.Token, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("spotify credentials not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("spotify token request failed, status %s: %s", resp.Status, string(body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if err := c.tokens.Set(ctx, tok.AccessToken, tok.ExpiresIn); err != nil {
		c.logger.Warn("SPOTIFY", fmt.Sprintf("Token store write failed: %v", err))
	}
	return tok.AccessToken, nil
}

// get performs one authorized GET against the API and decodes the body
// into out. Non-200 statuses are errors.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify request %s failed with status %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchArtist returns the best artist match for the name, or nil when the
// search fails or finds nothing.
func (c *Client) SearchArtist(ctx context.Context, name string) *Artist {
	var result struct {
		Artists struct {
			Items []Artist `json:"items"`
		} `json:"artists"`
	}
	path := fmt.Sprintf("/search?q=%s&type=artist&limit=1", url.QueryEscape(name))
	if err := c.get(ctx, path, &result); err != nil {
		c.logger.Error("SPOTIFY", fmt.Sprintf("Artist search failed: %v", err))
		return nil
	}
	if len(result.Artists.Items) == 0 {
		return nil
	}
	return &result.Artists.Items[0]
}

// SearchTrack looks for a track by name credited to the given artist, or
// nil when nothing matches.
func (c *Client) SearchTrack(ctx context.Context, trackName, artistID string) *Track {
	var result struct {
		Tracks struct {
			Items []Track `json:"items"`
		} `json:"tracks"`
	}
	path := fmt.Sprintf("/search?q=%s&type=track&limit=10", url.QueryEscape(trackName))
	if err := c.get(ctx, path, &result); err != nil {
		c.logger.Error("SPOTIFY", fmt.Sprintf("Track search failed: %v", err))
		return nil
	}
	for i := range result.Tracks.Items {
		for _, artist := range result.Tracks.Items[i].Artists {
			if artist.ID == artistID {
				return &result.Tracks.Items[i]
			}
		}
	}
	return nil
}

// GetArtistTopTracks returns the artist's top tracks for a market, or an
// empty slice when the call fails.
func (c *Client) GetArtistTopTracks(ctx context.Context, artistID, market string) []Track {
	var result struct {
		Tracks []Track `json:"tracks"`
	}
	path := fmt.Sprintf("/artists/%s/top-tracks?market=%s", artistID, url.QueryEscape(market))
	if err := c.get(ctx, path, &result); err != nil {
		c.logger.Error("SPOTIFY", fmt.Sprintf("Top tracks lookup failed: %v", err))
		return []Track{}
	}
	if result.Tracks == nil {
		return []Track{}
	}
	return result.Tracks
}

// GetArtistStats resolves the artist by name and derives the stats record.
// All-zero stats double as the failure fallback.
func (c *Client) GetArtistStats(ctx context.Context, name string) ArtistStats {
	artist := c.SearchArtist(ctx, name)
	if artist == nil {
		return ArtistStats{}
	}
	return statsFromArtist(artist)
}

// GetArtistStatsByID derives the stats record from the artist id.
func (c *Client) GetArtistStatsByID(ctx context.Context, artistID string) ArtistStats {
	var artist Artist
	if err := c.get(ctx, "/artists/"+artistID, &artist); err != nil {
		c.logger.Error("SPOTIFY", fmt.Sprintf("Artist lookup failed: %v", err))
		return ArtistStats{}
	}
	return statsFromArtist(&artist)
}

func statsFromArtist(artist *Artist) ArtistStats {
	return ArtistStats{
		Followers: artist.Followers.Total,
		// Spotify does not expose monthly listeners; 1.5x followers is the
		// long-standing estimate this site has always shown.
		MonthlyListeners: int(math.Floor(float64(artist.Followers.Total) * 1.5)),
		Popularity:       artist.Popularity,
	}
}

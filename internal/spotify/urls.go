package spotify

import (
	"net/url"
	"strings"
)

// StreamingURLs carries the per-platform links shown on a track page. Most
// platforms only offer search deep-links, so those are built from the artist
// and track names. Spinlet shut down, so it stays null for every track.
type StreamingURLs struct {
	Spotify      string  `json:"spotify"`
	AppleMusic   string  `json:"appleMusic"`
	YoutubeMusic string  `json:"youtubeMusic"`
	Soundcloud   string  `json:"soundcloud"`
	Audiomack    string  `json:"audiomack"`
	Boomplay     string  `json:"boomplay"`
	Deezer       string  `json:"deezer"`
	Tidal        string  `json:"tidal"`
	Spinlet      *string `json:"spinlet"`
	Naijaloaded  string  `json:"naijaloaded"`
}

// GenerateStreamingURLs builds the link set for a track. spotifyURL is the
// canonical track URL when known; empty falls back to a Spotify search link.
// Spaces are escaped as %20, not +: several providers take the query as a
// path segment, where a + is a literal plus.
func GenerateStreamingURLs(artistName, trackName, spotifyURL string) StreamingURLs {
	query := strings.ReplaceAll(url.QueryEscape(strings.TrimSpace(artistName+" "+trackName)), "+", "%20")

	if spotifyURL == "" {
		spotifyURL = "https://open.spotify.com/search/" + query
	}

	return StreamingURLs{
		Spotify:      spotifyURL,
		AppleMusic:   "https://music.apple.com/search?term=" + query,
		YoutubeMusic: "https://music.youtube.com/search?q=" + query,
		Soundcloud:   "https://soundcloud.com/search?q=" + query,
		Audiomack:    "https://audiomack.com/search/" + query,
		Boomplay:     "https://www.boomplay.com/search/" + query,
		Deezer:       "https://www.deezer.com/search/" + query,
		Tidal:        "https://listen.tidal.com/search/" + query,
		Spinlet:      nil,
		Naijaloaded:  "https://www.naijaloaded.com.ng/search?q=" + query,
	}
}

package spotify_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"samad-backend/internal/logger"
	"samad-backend/internal/models"
	"samad-backend/internal/spotify"
	"samad-backend/internal/storage"
	"samad-backend/internal/utils"
)

// Handler serves the Spotify-backed endpoints. The artist is fixed per
// deployment; every endpoint resolves the configured name server-side so
// the client never chooses whose numbers it reads.
type Handler struct {
	Client     *spotify.Client
	Store      storage.Storage
	ArtistName string
	Logger     *logger.Logger
}

func NewHandler(client *spotify.Client, store storage.Storage, artistName string, log *logger.Logger) *Handler {
	return &Handler{Client: client, Store: store, ArtistName: artistName, Logger: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/tracks", h.TopTracks)
	r.Get("/stats", h.ArtistStats)
	r.Post("/streaming-urls", h.StreamingURLs)
}

// TopTracks returns the artist's Spotify top tracks for the NG market.
// An unresolvable artist yields an empty list, never an error.
func (h *Handler) TopTracks(w http.ResponseWriter, r *http.Request) {
	artist := h.Client.SearchArtist(r.Context(), h.ArtistName)
	if artist == nil {
		utils.WriteJSON(w, http.StatusOK, []spotify.Track{})
		return
	}
	tracks := h.Client.GetArtistTopTracks(r.Context(), artist.ID, "NG")
	utils.WriteJSON(w, http.StatusOK, tracks)
}

// ArtistStats returns follower/listener numbers and persists them into the
// stats singleton so the site keeps the last good values.
func (h *Handler) ArtistStats(w http.ResponseWriter, r *http.Request) {
	stats := h.Client.GetArtistStats(r.Context(), h.ArtistName)

	if stats.Followers > 0 {
		if _, err := h.Store.UpdateSpotifyStats(r.Context(), models.SpotifyStatsUpdate{
			Followers:        &stats.Followers,
			MonthlyListeners: &stats.MonthlyListeners,
		}); err != nil {
			h.Logger.Warn("SPOTIFY", fmt.Sprintf("Failed to persist stats: %v", err))
		}
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}

// StreamingURLs builds the per-platform link set for a track, using the
// authoritative Spotify link when the track is found there.
func (h *Handler) StreamingURLs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackName string `json:"trackName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackName == "" {
		utils.WriteError(w, http.StatusBadRequest, "trackName is required")
		return
	}

	artist := h.Client.SearchArtist(r.Context(), h.ArtistName)
	if artist == nil {
		utils.WriteError(w, http.StatusNotFound, "Artist not found")
		return
	}

	spotifyURL := ""
	if track := h.Client.SearchTrack(r.Context(), req.TrackName, artist.ID); track != nil {
		spotifyURL = track.ExternalURLs["spotify"]
	}

	urls := spotify.GenerateStreamingURLs(h.ArtistName, req.TrackName, spotifyURL)
	utils.WriteJSON(w, http.StatusOK, urls)
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Track struct {
	bun.BaseModel `bun:"table:tracks"`

	ID          string    `bun:"id,pk" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	SpotifyID   string    `bun:"spotify_id" json:"spotifyId"`
	SpotifyURL  string    `bun:"spotify_url" json:"spotifyUrl"`
	ImageURL    string    `bun:"image_url" json:"imageUrl"`
	ReleaseDate string    `bun:"release_date" json:"releaseDate"`
	Plays       int       `bun:"plays" json:"plays"`
	Likes       int       `bun:"likes" json:"likes"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type InsertTrack struct {
	Title       string `json:"title"`
	SpotifyID   string `json:"spotifyId"`
	SpotifyURL  string `json:"spotifyUrl"`
	ImageURL    string `json:"imageUrl"`
	ReleaseDate string `json:"releaseDate"`
	Plays       int    `json:"plays"`
	Likes       int    `json:"likes"`
}

// TrackUpdate is a partial update: only non-nil fields are applied.
type TrackUpdate struct {
	Title       *string `json:"title"`
	SpotifyID   *string `json:"spotifyId"`
	SpotifyURL  *string `json:"spotifyUrl"`
	ImageURL    *string `json:"imageUrl"`
	ReleaseDate *string `json:"releaseDate"`
	Plays       *int    `json:"plays"`
	Likes       *int    `json:"likes"`
}

// Apply overlays the supplied fields onto an existing track.
func (u TrackUpdate) Apply(t *Track) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.SpotifyID != nil {
		t.SpotifyID = *u.SpotifyID
	}
	if u.SpotifyURL != nil {
		t.SpotifyURL = *u.SpotifyURL
	}
	if u.ImageURL != nil {
		t.ImageURL = *u.ImageURL
	}
	if u.ReleaseDate != nil {
		t.ReleaseDate = *u.ReleaseDate
	}
	if u.Plays != nil {
		t.Plays = *u.Plays
	}
	if u.Likes != nil {
		t.Likes = *u.Likes
	}
}

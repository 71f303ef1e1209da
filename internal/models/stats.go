package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SpotifyStats is a singleton record: at most one instance exists per
// store, lazily materialized by the first update.
type SpotifyStats struct {
	bun.BaseModel `bun:"table:spotify_stats"`

	ID               string    `bun:"id,pk" json:"id"`
	Followers        int       `bun:"followers" json:"followers"`
	MonthlyListeners int       `bun:"monthly_listeners" json:"monthlyListeners"`
	LastUpdated      time.Time `bun:"last_updated,notnull" json:"lastUpdated"`
}

type SpotifyStatsUpdate struct {
	Followers        *int `json:"followers"`
	MonthlyListeners *int `json:"monthlyListeners"`
}

func (u SpotifyStatsUpdate) Apply(s *SpotifyStats) {
	if u.Followers != nil {
		s.Followers = *u.Followers
	}
	if u.MonthlyListeners != nil {
		s.MonthlyListeners = *u.MonthlyListeners
	}
}

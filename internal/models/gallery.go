package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GalleryImage struct {
	bun.BaseModel `bun:"table:gallery_images"`

	ID        string    `bun:"id,pk" json:"id"`
	Title     string    `bun:"title" json:"title"`
	ImageURL  string    `bun:"image_url,notnull" json:"imageUrl"`
	Caption   string    `bun:"caption" json:"caption"`
	IsActive  bool      `bun:"is_active" json:"isActive"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

type InsertGalleryImage struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
	IsActive *bool  `json:"isActive"`
}

type GalleryImageUpdate struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"imageUrl"`
	Caption  *string `json:"caption"`
	IsActive *bool   `json:"isActive"`
}

func (u GalleryImageUpdate) Apply(g *GalleryImage) {
	if u.Title != nil {
		g.Title = *u.Title
	}
	if u.ImageURL != nil {
		g.ImageURL = *u.ImageURL
	}
	if u.Caption != nil {
		g.Caption = *u.Caption
	}
	if u.IsActive != nil {
		g.IsActive = *u.IsActive
	}
}

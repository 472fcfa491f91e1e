package models

import "time"

// MetaLink caches a resolved mapping from a source slug to the metadata
// providers' ids, so repeat lookups skip the MAL-sync round trip.
type MetaLink struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Source    string     `json:"source" gorm:"size:50;not null;uniqueIndex:idx_meta_source_slug"`
	Slug      string     `json:"slug" gorm:"size:200;not null;uniqueIndex:idx_meta_source_slug"`
	MALID     *int       `json:"mal_id,omitempty"`
	AniListID *int       `json:"anilist_id,omitempty"`
	Title     *string    `json:"title,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (MetaLink) TableName() string {
	return "meta_links"
}

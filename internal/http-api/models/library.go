package models

import "time"

// LibraryEntry is an account-scoped bookmark, as opposed to the
// session-cookie bookmarks held by the upstream service.
type LibraryEntry struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        string     `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_library_user_manga"`
	MangaID       string     `json:"manga_id" gorm:"size:200;not null;uniqueIndex:idx_library_user_manga"`
	Title         string     `json:"title" gorm:"not null"`
	Image         *string    `json:"image,omitempty"`
	LatestChapter *string    `json:"latest_chapter,omitempty"`
	LastReadAt    *time.Time `json:"last_read_at,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}

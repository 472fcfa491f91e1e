package models

import "time"

// ReadingProgress records the last chapter a user opened for a title.
// Postgres is the durable copy; redis holds a TTL'd hot copy for reads.
type ReadingProgress struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string     `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_progress_user_manga"`
	MangaID    string     `json:"manga_id" gorm:"size:200;not null;uniqueIndex:idx_progress_user_manga"`
	ChapterID  string     `json:"chapter_id" gorm:"size:200;not null"`
	LastReadAt time.Time  `json:"last_read_at" gorm:"not null"`
	CreatedAt  *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}

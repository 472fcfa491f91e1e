package models

import "time"

type Comment struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	MangaID   string     `json:"manga_id" gorm:"size:200;not null;index"`
	ChapterID *string    `json:"chapter_id,omitempty" gorm:"size:200;index"`
	UserID    string     `json:"user_id" gorm:"size:36;not null"`
	Username  string     `json:"username" gorm:"size:50;not null"`
	Body      string     `json:"body" gorm:"type:text;not null"`
	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

func (Comment) TableName() string {
	return "comments"
}

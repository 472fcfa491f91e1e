package models

import "time"

type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	MALToken     *string    `json:"-"` // OAuth bearer token for the linked MAL account
	CreatedAt    *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

package dto

import "mangareader/internal/http-api/models"

type CreateCommentDTO struct {
	Body      string  `json:"body" binding:"required,max=2000"`
	ChapterID *string `json:"chapter_id,omitempty"`
}

func (d CreateCommentDTO) ToModel(mangaID, userID, username string) models.Comment {
	return models.Comment{
		MangaID:   mangaID,
		ChapterID: d.ChapterID,
		UserID:    userID,
		Username:  username,
		Body:      d.Body,
	}
}

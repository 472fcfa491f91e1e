package dto

import "mangareader/internal/http-api/models"

type AddLibraryDTO struct {
	MangaID       string  `json:"manga_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Image         *string `json:"image,omitempty"`
	LatestChapter *string `json:"latest_chapter,omitempty"`
}

func (d AddLibraryDTO) ToModel(userID string) models.LibraryEntry {
	return models.LibraryEntry{
		UserID:        userID,
		MangaID:       d.MangaID,
		Title:         d.Title,
		Image:         d.Image,
		LatestChapter: d.LatestChapter,
	}
}

type RecordProgressDTO struct {
	MangaID   string `json:"manga_id" binding:"required"`
	ChapterID string `json:"chapter_id" binding:"required"`
}

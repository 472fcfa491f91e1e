package dto

import "mangareader/internal/upstream"

type AddBookmarkDTO struct {
	MangaID       string `json:"manga_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Image         string `json:"image"`
	LatestChapter string `json:"latest_chapter"`
}

func (d AddBookmarkDTO) ToUpstream() upstream.Bookmark {
	return upstream.Bookmark{
		MangaID:       d.MangaID,
		Name:          d.Name,
		Image:         d.Image,
		LatestChapter: d.LatestChapter,
	}
}

type UpdateBookmarkDTO struct {
	ChapterID string `json:"chapter_id" binding:"required"`
}

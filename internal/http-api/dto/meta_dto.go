package dto

type UpdateMALStatusDTO struct {
	Status       string `json:"status" binding:"omitempty,oneof=reading completed on_hold dropped plan_to_read"`
	ChaptersRead *int   `json:"chapters_read,omitempty"`
}

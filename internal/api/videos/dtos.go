package videos

import (
	"time"

	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/video"
)

type (
	CreateRequest struct {
		Title       string `json:"title" validate:"required,max=256"`
		Description string `json:"description" validate:"max=4096"`
	}

	VideoDto struct {
		ID           uuid.UUID `json:"id"`
		UserID       uuid.UUID `json:"user_id"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		VideoURL     *string   `json:"video_url"`
		ThumbnailURL *string   `json:"thumbnail_url"`
		Processing   bool      `json:"processing"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
)

func newVideoDto(model *video.Video, processing bool) VideoDto {
	return VideoDto{
		ID:           model.ID,
		UserID:       model.UserID,
		Title:        model.Title,
		Description:  model.Description,
		VideoURL:     model.VideoURL,
		ThumbnailURL: model.ThumbnailURL,
		Processing:   processing,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

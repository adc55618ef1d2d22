package dto

import (
	"time"

	"jobvibes_backend/internal/models"
)

// UploadResponse is the stored-file record returned after an upload.
type UploadResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ContentType  string    `json:"content_type"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUploadResponse(file *models.File) *UploadResponse {
	return &UploadResponse{
		ID:           file.ID,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		URL:          file.URL,
		ContentType:  file.ContentType,
		Type:         file.Type,
		CreatedAt:    file.CreatedAt,
	}
}

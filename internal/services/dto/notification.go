package dto

import (
	"time"

	"jobvibes_backend/internal/models"
)

// NotificationResponse is one delivered notification in a user's inbox.
type NotificationResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Poster    *AuthorSummary    `json:"poster,omitempty"`
}

func NewNotificationResponse(log *models.NotificationLog) *NotificationResponse {
	return &NotificationResponse{
		ID:        log.ID,
		Title:     log.Title,
		Body:      log.Body,
		Data:      log.GetData(),
		CreatedAt: log.CreatedAt,
		Poster:    NewAuthorSummary(log.Poster),
	}
}

type PaginatedNotificationsResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Pagination    Pagination              `json:"pagination"`
}

// RegisterTokenRequest stores a device push token for the caller.
type RegisterTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
}

// SaveCredentialRequest uploads the push service-account key.
type SaveCredentialRequest struct {
	Credential map[string]interface{} `json:"credential" validate:"required"`
}

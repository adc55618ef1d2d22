package services

import (
	"jobvibes_backend/internal/email"
	"jobvibes_backend/internal/storage"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	FeedService         FeedService
	LedgerService       LedgerService
	NotificationService NotificationService
	CatalogService      CatalogService
	UploadService       UploadService
	EmailService        email.Provider
	Storage             storage.Storage
}

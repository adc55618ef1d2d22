package handlers

// AppHandlers holds every handler the router registers.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	FeedHandler         *FeedHandler
	NotificationHandler *NotificationHandler
	CatalogHandler      *CatalogHandler
	UploadHandler       *UploadHandler
}

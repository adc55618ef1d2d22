package handlers

import (
	"net/http"

	"jobvibes_backend/internal/middleware"
	"jobvibes_backend/internal/services"
	"jobvibes_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
	userService         services.UserService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService, userService services.UserService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		userService:         userService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/token", h.RegisterToken)
		notifications.POST("/credential", h.SaveCredential)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, limit := ParsePagination(c)

	resp, err := h.notificationService.ListNotifications(userID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterToken stores the caller's device push token.
func (h *NotificationHandler) RegisterToken(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.RegisterTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	token := req.FCMToken
	update := &dto.UpdateProfileRequest{FCMToken: &token}
	if _, err := h.userService.UpdateProfile(userID, update); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Status: true, Message: "Token registered"})
}

// SaveCredential uploads the push service-account key.
func (h *NotificationHandler) SaveCredential(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	var req dto.SaveCredentialRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.notificationService.SaveCredential(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Status: true, Message: "Credential saved"})
}

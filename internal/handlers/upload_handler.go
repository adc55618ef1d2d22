package handlers

import (
	"io"
	"net/http"

	"jobvibes_backend/internal/middleware"
	"jobvibes_backend/internal/services"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/:id", h.ServeFile)
	}

	uploads := rg.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("", h.Upload)
		uploads.DELETE("/:id", h.Delete)
	}
}

// Upload accepts one multipart file plus a "type" field naming the upload
// kind (profile_image, intro_video, resume or media).
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A file is required"))
		return
	}

	fileType := c.PostForm("type")
	switch fileType {
	case services.FileTypeProfileImage, services.FileTypeIntroVideo, services.FileTypeResume, services.FileTypeMedia:
	case "":
		fileType = services.FileTypeMedia
	default:
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown upload type: "+fileType))
		return
	}

	resp, err := h.uploadService.Upload(c.Request.Context(), userID, header, fileType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UploadHandler) ServeFile(c *gin.Context) {
	file, reader, err := h.uploadService.GetFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", file.ContentType)
	c.Header("Content-Disposition", `inline; filename="`+file.OriginalName+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Status: true, Message: "File deleted"})
}

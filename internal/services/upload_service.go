package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"jobvibes_backend/internal/config"
	"jobvibes_backend/internal/imageprocessor"
	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/internal/storage"
	"jobvibes_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Upload kinds that feed back into the profile.
const (
	FileTypeProfileImage = "profile_image"
	FileTypeIntroVideo   = "intro_video"
	FileTypeResume       = "resume"
	FileTypeMedia        = "media"
)

type UploadService interface {
	Upload(ctx context.Context, userID string, header *multipart.FileHeader, fileType string) (*dto.UploadResponse, error)
	GetFile(ctx context.Context, fileID string) (*models.File, io.ReadCloser, error)
	Delete(ctx context.Context, userID, fileID string) error
}

type UploadServiceImpl struct {
	uploadRepo repositories.UploadRepository
	userRepo   repositories.UserRepository
	store      storage.Storage
	processor  *imageprocessor.Processor
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
) UploadService {
	return &UploadServiceImpl{
		uploadRepo: uploadRepo,
		userRepo:   userRepo,
		store:      store,
		processor:  processor,
	}
}

// Upload validates, stores and records one file, then wires its URL into the
// profile when the kind calls for it. A new resume replaces the old one,
// file and record both.
func (s *UploadServiceImpl) Upload(ctx context.Context, userID string, header *multipart.FileHeader, fileType string) (*dto.UploadResponse, error) {
	cfg := config.GetConfig()

	if header.Size > cfg.Upload.MaxSize {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("File exceeds the %d byte limit", cfg.Upload.MaxSize))
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedType(contentType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("File type %s is not allowed", contentType))
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	var reader io.Reader = src
	size := header.Size
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Big images get transcoded down before they hit storage. If decoding
	// fails the original goes through untouched.
	if imageprocessor.IsImage(contentType) && size > cfg.Upload.CompressThreshold {
		compressed, err := s.processor.Compress(src)
		if err != nil {
			logger.WithError(err).Warn("image transcode failed, storing original", "filename", header.Filename)
			if _, err := src.Seek(0, io.SeekStart); err != nil {
				return nil, apperrors.InternalError(err)
			}
		} else {
			reader = bytes.NewReader(compressed)
			size = int64(len(compressed))
			contentType = "image/jpeg"
			ext = ".jpg"
		}
	}

	filename := uuid.NewString() + ext
	path := fmt.Sprintf("%s/%s/%s", fileType, userID, filename)

	if err := s.store.Save(ctx, path, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}
	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if fileType == FileTypeResume {
		if err := s.removeExisting(ctx, userID, FileTypeResume); err != nil {
			return nil, err
		}
	}

	file := &models.File{
		UserID:       userID,
		Filename:     filename,
		OriginalName: header.Filename,
		Path:         path,
		Size:         size,
		URL:          url,
		ContentType:  contentType,
		Type:         fileType,
	}
	if err := s.uploadRepo.Create(file); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.attachToProfile(userID, fileType, url); err != nil {
		return nil, err
	}
	return dto.NewUploadResponse(file), nil
}

func (s *UploadServiceImpl) GetFile(ctx context.Context, fileID string) (*models.File, io.ReadCloser, error) {
	file, err := s.uploadRepo.FindByID(fileID)
	if err != nil {
		return nil, nil, apperrors.NewNotFoundError("file", "File not found")
	}
	reader, err := s.store.Get(ctx, file.Path)
	if err != nil {
		return nil, nil, apperrors.NewNotFoundError("file", "File not found")
	}
	return file, reader, nil
}

func (s *UploadServiceImpl) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.uploadRepo.FindByID(fileID)
	if err != nil {
		return apperrors.NewNotFoundError("file", "File not found")
	}
	if file.UserID != userID {
		return apperrors.NewForbiddenError("You can only delete your own files")
	}

	if err := s.store.Delete(ctx, file.Path); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.uploadRepo.Delete(file.ID); err != nil {
		return apperrors.InternalError(err)
	}

	switch file.Type {
	case FileTypeProfileImage:
		return s.clearProfileField(userID, "profile_image")
	case FileTypeIntroVideo:
		return s.clearProfileField(userID, "intro_video_url")
	case FileTypeResume:
		return s.clearProfileField(userID, "resume_url")
	}
	return nil
}

func (s *UploadServiceImpl) removeExisting(ctx context.Context, userID, fileType string) error {
	existing, err := s.uploadRepo.FindByUserAndType(userID, fileType)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for i := range existing {
		if err := s.store.Delete(ctx, existing[i].Path); err != nil {
			logger.WithError(err).Warn("failed to delete stored file", "path", existing[i].Path)
		}
		if err := s.uploadRepo.Delete(existing[i].ID); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *UploadServiceImpl) attachToProfile(userID, fileType, url string) error {
	fields := map[string]interface{}{}
	switch fileType {
	case FileTypeProfileImage:
		fields["profile_image"] = url
	case FileTypeIntroVideo:
		// An intro video makes the profile presentable, so it activates
		// the account the same way a first feed post does.
		fields["intro_video_url"] = url
		fields["status"] = models.UserStatusActive
	case FileTypeResume:
		fields["resume_url"] = url
	default:
		return nil
	}
	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UploadServiceImpl) clearProfileField(userID, field string) error {
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{field: ""}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func allowedType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

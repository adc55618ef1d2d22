package repositories

import (
	"errors"

	"jobvibes_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file not found")

type UploadRepository interface {
	Create(file *models.File) error
	FindByID(id string) (*models.File, error)
	FindByUserAndType(userID, fileType string) ([]models.File, error)
	Delete(id string) error
}

type UploadRepositoryImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &UploadRepositoryImpl{db: db}
}

func (r *UploadRepositoryImpl) Create(file *models.File) error {
	return r.db.Create(file).Error
}

func (r *UploadRepositoryImpl) FindByID(id string) (*models.File, error) {
	var file models.File
	err := r.db.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *UploadRepositoryImpl) FindByUserAndType(userID, fileType string) ([]models.File, error) {
	var files []models.File
	err := r.db.Where("user_id = ? AND type = ?", userID, fileType).Find(&files).Error
	return files, err
}

func (r *UploadRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.File{}, "id = ?", id).Error
}

package repositories

import (
	"errors"

	"jobvibes_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFeedNotFound = errors.New("feed not found")

// FeedFilter narrows the feed listing. Role restricts results to posts whose
// author holds that role; ExcludeAuthorID drops the viewer's own posts. The
// membership filters match a single value against the post's JSON arrays.
type FeedFilter struct {
	Role            models.UserRole
	ExcludeAuthorID string
	AuthorID        string
	Search          string
	JobTitle        string
	JobType         string
	State           string
	City            string
	Page            int
	Limit           int
}

type FeedRepository interface {
	Create(feed *models.Feed) error
	FindByID(id string) (*models.Feed, error)
	FindByIDWithAuthor(id string) (*models.Feed, error)
	Update(feed *models.Feed) error
	Delete(id string) error
	FindWithFilter(filter FeedFilter) ([]models.Feed, int64, error)
	CountByAuthor(authorID string) (int64, error)
}

type FeedRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &FeedRepositoryImpl{db: db}
}

func (r *FeedRepositoryImpl) Create(feed *models.Feed) error {
	return r.db.Create(feed).Error
}

func (r *FeedRepositoryImpl) FindByID(id string) (*models.Feed, error) {
	var feed models.Feed
	err := r.db.First(&feed, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, err
	}
	return &feed, nil
}

func (r *FeedRepositoryImpl) FindByIDWithAuthor(id string) (*models.Feed, error) {
	var feed models.Feed
	err := r.db.Preload("Author").First(&feed, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, err
	}
	return &feed, nil
}

func (r *FeedRepositoryImpl) Update(feed *models.Feed) error {
	return r.db.Save(feed).Error
}

func (r *FeedRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Feed{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedNotFound
	}
	return nil
}

// FindWithFilter lists feeds newest-first with the total count for the same
// criteria, so pagination metadata stays consistent with the page content.
func (r *FeedRepositoryImpl) FindWithFilter(filter FeedFilter) ([]models.Feed, int64, error) {
	query := r.db.Model(&models.Feed{})

	if filter.Role != "" {
		query = query.Where("author_role = ?", filter.Role)
	}
	if filter.ExcludeAuthorID != "" {
		query = query.Where("author_id <> ?", filter.ExcludeAuthorID)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		query = query.Where("content LIKE ?", "%"+filter.Search+"%")
	}
	query = jsonArrayContains(query, "job_title", filter.JobTitle)
	query = jsonArrayContains(query, "job_type", filter.JobType)
	query = jsonArrayContains(query, "states", filter.State)
	query = jsonArrayContains(query, "cities", filter.City)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var feeds []models.Feed
	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&feeds).Error
	if err != nil {
		return nil, 0, err
	}
	return feeds, total, nil
}

// jsonArrayContains matches one value inside a JSON string-array column.
// The text cast keeps the predicate working on both postgres jsonb and the
// sqlite test driver.
func jsonArrayContains(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return query
	}
	return query.Where("CAST("+column+" AS TEXT) LIKE ?", `%"`+value+`"%`)
}

func (r *FeedRepositoryImpl) CountByAuthor(authorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Feed{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

package repositories

import (
	"errors"

	"jobvibes_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReactionNotFound = errors.New("reaction not found")

// ReactedFilter narrows a user's reacted-post listing by the rating they gave
// and by post content.
type ReactedFilter struct {
	UserID    string
	MinRating int
	MaxRating int
	Search    string
	Page      int
	Limit     int
}

// ReactedFeed pairs a post with the rating the viewer gave it.
type ReactedFeed struct {
	Feed        models.Feed
	RatingValue int
}

type LedgerRepository interface {
	// Reaction operations
	UpsertReaction(userID, feedID string, rating int) (created bool, err error)
	FindReaction(userID, feedID string) (*models.Reaction, error)
	FindReactionsForFeeds(userID string, feedIDs []string) (map[string]models.Reaction, error)
	FindReactedFeeds(filter ReactedFilter) ([]ReactedFeed, int64, error)

	// Application operations
	CreateApplication(userID, feedID string) error
	HasApplied(userID, feedID string) (bool, error)
	FindApplicationsForFeeds(userID string, feedIDs []string) (map[string]bool, error)
	FindApplicants(feedID string, page, limit int) ([]models.User, int64, error)
}

type LedgerRepositoryImpl struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// Reaction operations

// UpsertReaction records a rating. A repeat reaction only overwrites the
// rating value; the post counter moves on first insert alone, in the same
// transaction as the insert.
func (r *LedgerRepositoryImpl) UpsertReaction(userID, feedID string, rating int) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.First(&existing, "user_id = ? AND feed_id = ?", userID, feedID).Error
		if err == nil {
			return tx.Model(&existing).Update("rating_value", rating).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		reaction := models.Reaction{UserID: userID, FeedID: feedID, RatingValue: rating}
		if err := tx.Create(&reaction).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Feed{}).Where("id = ?", feedID).
			UpdateColumn("no_of_reactions", gorm.Expr("no_of_reactions + 1")).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *LedgerRepositoryImpl) FindReaction(userID, feedID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.First(&reaction, "user_id = ? AND feed_id = ?", userID, feedID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReactionNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

// FindReactionsForFeeds bulk-loads the viewer's reactions for a page of
// feeds, keyed by feed ID.
func (r *LedgerRepositoryImpl) FindReactionsForFeeds(userID string, feedIDs []string) (map[string]models.Reaction, error) {
	result := make(map[string]models.Reaction)
	if len(feedIDs) == 0 {
		return result, nil
	}
	var reactions []models.Reaction
	err := r.db.Where("user_id = ? AND feed_id IN ?", userID, feedIDs).Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	for _, reaction := range reactions {
		result[reaction.FeedID] = reaction
	}
	return result, nil
}

// FindReactedFeeds lists the posts a user has reacted to, newest reaction
// first, filtered by rating range and post content.
func (r *LedgerRepositoryImpl) FindReactedFeeds(filter ReactedFilter) ([]ReactedFeed, int64, error) {
	query := r.db.Model(&models.Reaction{}).
		Joins("JOIN feeds ON feeds.id = reactions.feed_id").
		Where("reactions.user_id = ?", filter.UserID)

	if filter.MinRating > 0 {
		query = query.Where("reactions.rating_value >= ?", filter.MinRating)
	}
	if filter.MaxRating > 0 {
		query = query.Where("reactions.rating_value <= ?", filter.MaxRating)
	}
	if filter.Search != "" {
		query = query.Where("feeds.content LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reactions []models.Reaction
	offset := (filter.Page - 1) * filter.Limit
	err := query.Select("reactions.*").
		Order("reactions.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&reactions).Error
	if err != nil {
		return nil, 0, err
	}

	feedIDs := make([]string, 0, len(reactions))
	for _, reaction := range reactions {
		feedIDs = append(feedIDs, reaction.FeedID)
	}
	var feeds []models.Feed
	if len(feedIDs) > 0 {
		if err := r.db.Preload("Author").Where("id IN ?", feedIDs).Find(&feeds).Error; err != nil {
			return nil, 0, err
		}
	}
	feedByID := make(map[string]models.Feed, len(feeds))
	for _, feed := range feeds {
		feedByID[feed.ID] = feed
	}

	result := make([]ReactedFeed, 0, len(reactions))
	for _, reaction := range reactions {
		feed, ok := feedByID[reaction.FeedID]
		if !ok {
			continue
		}
		result = append(result, ReactedFeed{Feed: feed, RatingValue: reaction.RatingValue})
	}
	return result, total, nil
}

// Application operations

// CreateApplication appends an application row and bumps the post counter.
// There is no uniqueness here: applying twice counts twice.
func (r *LedgerRepositoryImpl) CreateApplication(userID, feedID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		application := models.Application{UserID: userID, FeedID: feedID, IsApplied: true}
		if err := tx.Create(&application).Error; err != nil {
			return err
		}
		return tx.Model(&models.Feed{}).Where("id = ?", feedID).
			UpdateColumn("no_of_applications", gorm.Expr("no_of_applications + 1")).Error
	})
}

func (r *LedgerRepositoryImpl) HasApplied(userID, feedID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("user_id = ? AND feed_id = ? AND is_applied = ?", userID, feedID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *LedgerRepositoryImpl) FindApplicationsForFeeds(userID string, feedIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(feedIDs) == 0 {
		return result, nil
	}
	var applications []models.Application
	err := r.db.Where("user_id = ? AND feed_id IN ? AND is_applied = ?", userID, feedIDs, true).
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	for _, application := range applications {
		result[application.FeedID] = true
	}
	return result, nil
}

// FindApplicants returns the distinct users who applied to a post.
func (r *LedgerRepositoryImpl) FindApplicants(feedID string, page, limit int) ([]models.User, int64, error) {
	subquery := r.db.Model(&models.Application{}).
		Select("DISTINCT user_id").
		Where("feed_id = ? AND is_applied = ?", feedID, true)

	var total int64
	if err := r.db.Model(&models.User{}).Where("id IN (?)", subquery).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (page - 1) * limit
	err := r.db.Where("id IN (?)", subquery).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

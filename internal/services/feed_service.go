package services

import (
	"errors"

	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"
)

type FeedService interface {
	CreateFeed(userID string, req *dto.CreateFeedRequest) (*dto.FeedResponse, error)
	GetFeeds(viewerID string, query *dto.FeedListQuery) (*dto.PaginatedFeedsResponse, error)
	ExploreFeeds(viewerID string, query *dto.FeedListQuery) (*dto.PaginatedFeedsResponse, error)
	GetMyFeeds(userID string, page, limit int) (*dto.PaginatedFeedsResponse, error)
	GetFeed(viewerID, feedID string) (*dto.FeedResponse, error)
	UpdateFeed(userID, feedID string, req *dto.UpdateFeedRequest) (*dto.FeedResponse, error)
	DeleteFeed(userID, feedID string) error
}

type FeedServiceImpl struct {
	feedRepo   repositories.FeedRepository
	ledgerRepo repositories.LedgerRepository
	userRepo   repositories.UserRepository
	notifier   NotificationService
}

func NewFeedService(
	feedRepo repositories.FeedRepository,
	ledgerRepo repositories.LedgerRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) FeedService {
	return &FeedServiceImpl{
		feedRepo:   feedRepo,
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// CreateFeed publishes a post. Posting activates the account, completes the
// feed onboarding step and fans a notification out to everyone else.
func (s *FeedServiceImpl) CreateFeed(userID string, req *dto.CreateFeedRequest) (*dto.FeedResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role == "" {
		return nil, apperrors.NewBadRequestError("Select a role before posting to the feed")
	}
	if req.Content == "" && len(req.Media) == 0 {
		return nil, apperrors.NewBadRequestError("Either content or media is required")
	}

	feed := &models.Feed{
		AuthorID:          user.ID,
		AuthorRole:        user.Role,
		Content:           req.Content,
		Media:             models.StringArray(req.Media),
		JobTitle:          models.StringArray(req.JobTitle),
		WorkPlaceName:     models.StringArray(req.WorkPlaceName),
		JobType:           models.StringArray(req.JobType),
		States:            models.StringArray(req.States),
		Cities:            models.StringArray(req.Cities),
		NoticePeriod:      req.NoticePeriod,
		IsImmediateJoiner: req.IsImmediateJoiner,
	}
	if err := s.feedRepo.Create(feed); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"status":         models.UserStatusActive,
		"is_feed_posted": true,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.NotifyNewPost(user, feed)

	feed.Author = user
	return dto.NewFeedResponse(feed), nil
}

// GetFeeds is the main feed: posts authored by the opposite role, never the
// viewer's own.
func (s *FeedServiceImpl) GetFeeds(viewerID string, query *dto.FeedListQuery) (*dto.PaginatedFeedsResponse, error) {
	viewer, err := s.userRepo.FindByID(viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	filter := listFilter(viewerID, query)
	switch viewer.Role {
	case models.UserRoleCandidate:
		filter.Role = models.UserRoleEmployer
	case models.UserRoleEmployer:
		filter.Role = models.UserRoleCandidate
	}

	return s.listAnnotated(viewerID, filter)
}

// ExploreFeeds shows everything regardless of role, minus the viewer's own
// posts.
func (s *FeedServiceImpl) ExploreFeeds(viewerID string, query *dto.FeedListQuery) (*dto.PaginatedFeedsResponse, error) {
	return s.listAnnotated(viewerID, listFilter(viewerID, query))
}

func listFilter(viewerID string, query *dto.FeedListQuery) repositories.FeedFilter {
	return repositories.FeedFilter{
		ExcludeAuthorID: viewerID,
		Search:          query.Search,
		JobTitle:        query.JobTitle,
		JobType:         query.JobType,
		State:           query.State,
		City:            query.City,
		Page:            query.Page,
		Limit:           query.Limit,
	}
}

// GetMyFeeds lists the caller's own posts and reconciles the onboarding flag
// with what is actually in the table.
func (s *FeedServiceImpl) GetMyFeeds(userID string, page, limit int) (*dto.PaginatedFeedsResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.feedRepo.CountByAuthor(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	hasPosts := count > 0
	if hasPosts != user.IsFeedPosted {
		if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"is_feed_posted": hasPosts}); err != nil {
			logger.WithError(err).Warn("failed to reconcile feed flag", "user_id", userID)
		}
	}

	filter := repositories.FeedFilter{
		AuthorID: userID,
		Page:     page,
		Limit:    limit,
	}
	return s.listAnnotated(userID, filter)
}

func (s *FeedServiceImpl) GetFeed(viewerID, feedID string) (*dto.FeedResponse, error) {
	feed, err := s.feedRepo.FindByIDWithAuthor(feedID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedNotFound) {
			return nil, apperrors.NewNotFoundError("feed", "Feed not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewFeedResponse(feed)
	if err := s.annotate(viewerID, []*dto.FeedResponse{resp}); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *FeedServiceImpl) UpdateFeed(userID, feedID string, req *dto.UpdateFeedRequest) (*dto.FeedResponse, error) {
	feed, err := s.feedRepo.FindByIDWithAuthor(feedID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedNotFound) {
			return nil, apperrors.NewNotFoundError("feed", "Feed not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if feed.AuthorID != userID {
		return nil, apperrors.ErrNotFeedOwner
	}

	if req.Content != nil {
		feed.Content = *req.Content
	}
	if req.Media != nil {
		feed.SetMedia(req.Media)
	}
	if req.JobTitle != nil {
		feed.JobTitle = models.StringArray(req.JobTitle)
	}
	if req.WorkPlaceName != nil {
		feed.WorkPlaceName = models.StringArray(req.WorkPlaceName)
	}
	if req.JobType != nil {
		feed.JobType = models.StringArray(req.JobType)
	}
	if req.States != nil {
		feed.States = models.StringArray(req.States)
	}
	if req.Cities != nil {
		feed.Cities = models.StringArray(req.Cities)
	}
	if req.NoticePeriod != nil {
		feed.NoticePeriod = req.NoticePeriod
	}
	if req.IsImmediateJoiner != nil {
		feed.IsImmediateJoiner = *req.IsImmediateJoiner
	}

	if feed.Content == "" && len(feed.GetMedia()) == 0 {
		return nil, apperrors.NewBadRequestError("Either content or media is required")
	}
	if err := s.feedRepo.Update(feed); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewFeedResponse(feed), nil
}

func (s *FeedServiceImpl) DeleteFeed(userID, feedID string) error {
	feed, err := s.feedRepo.FindByID(feedID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedNotFound) {
			return apperrors.NewNotFoundError("feed", "Feed not found")
		}
		return apperrors.InternalError(err)
	}
	if feed.AuthorID != userID {
		return apperrors.ErrNotFeedOwner
	}

	if err := s.feedRepo.Delete(feedID); err != nil {
		return apperrors.InternalError(err)
	}

	// Deleting the last post reopens the onboarding step.
	count, err := s.feedRepo.CountByAuthor(userID)
	if err == nil && count == 0 {
		if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"is_feed_posted": false}); err != nil {
			logger.WithError(err).Warn("failed to reconcile feed flag", "user_id", userID)
		}
	}
	return nil
}

func (s *FeedServiceImpl) listAnnotated(viewerID string, filter repositories.FeedFilter) (*dto.PaginatedFeedsResponse, error) {
	feeds, total, err := s.feedRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.FeedResponse, 0, len(feeds))
	for i := range feeds {
		responses = append(responses, dto.NewFeedResponse(&feeds[i]))
	}
	if err := s.annotate(viewerID, responses); err != nil {
		return nil, err
	}

	return &dto.PaginatedFeedsResponse{
		Feeds:      responses,
		Pagination: dto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// annotate overlays the viewer's own reaction and application state onto a
// page of posts with two bulk lookups.
func (s *FeedServiceImpl) annotate(viewerID string, responses []*dto.FeedResponse) error {
	if len(responses) == 0 {
		return nil
	}
	feedIDs := make([]string, 0, len(responses))
	for _, resp := range responses {
		feedIDs = append(feedIDs, resp.ID)
	}

	reactions, err := s.ledgerRepo.FindReactionsForFeeds(viewerID, feedIDs)
	if err != nil {
		return apperrors.InternalError(err)
	}
	applications, err := s.ledgerRepo.FindApplicationsForFeeds(viewerID, feedIDs)
	if err != nil {
		return apperrors.InternalError(err)
	}

	for _, resp := range responses {
		if reaction, ok := reactions[resp.ID]; ok {
			resp.IsReacted = true
			resp.RatingValue = reaction.RatingValue
		}
		resp.IsApplied = applications[resp.ID]
	}
	return nil
}

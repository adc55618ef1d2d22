package services

import (
	"errors"

	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"
)

type LedgerService interface {
	React(userID, feedID string, req *dto.ReactRequest) (*dto.FeedResponse, error)
	Apply(userID, feedID string) (*dto.FeedResponse, error)
	ListApplicants(userID, feedID string, page, limit int) (*dto.PaginatedApplicantsResponse, error)
	ReactedFeeds(userID string, query *dto.ReactedFeedsQuery) (*dto.PaginatedFeedsResponse, error)
}

type LedgerServiceImpl struct {
	ledgerRepo repositories.LedgerRepository
	feedRepo   repositories.FeedRepository
	userRepo   repositories.UserRepository
	notifier   NotificationService
}

func NewLedgerService(
	ledgerRepo repositories.LedgerRepository,
	feedRepo repositories.FeedRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
) LedgerService {
	return &LedgerServiceImpl{
		ledgerRepo: ledgerRepo,
		feedRepo:   feedRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// React records a 1-5 rating on a post. Only users who have themselves
// posted may react; that gate fires before the post is even looked up.
// Repeat reactions overwrite the rating without moving the counter and
// without another notification.
func (s *LedgerServiceImpl) React(userID, feedID string, req *dto.ReactRequest) (*dto.FeedResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsFeedPosted {
		return nil, apperrors.ErrReactionNotAllowed
	}

	feed, err := s.feedRepo.FindByIDWithAuthor(feedID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedNotFound) {
			return nil, apperrors.NewNotFoundError("feed", "Feed not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if feed.AuthorID == userID {
		return nil, apperrors.ErrSelfInteraction
	}

	created, err := s.ledgerRepo.UpsertReaction(userID, feedID, req.RatingValue)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if created {
		feed.NoOfReactions++
		s.notifier.NotifyReaction(user, feed)
	}

	resp := dto.NewFeedResponse(feed)
	resp.IsReacted = true
	resp.RatingValue = req.RatingValue
	applied, err := s.ledgerRepo.HasApplied(userID, feedID)
	if err == nil {
		resp.IsApplied = applied
	}
	return resp, nil
}

// Apply submits a job application. Candidates only, never to their own post.
// Applying again is not deduplicated: each submission adds a row and bumps
// the counter again, which is the behavior clients already rely on.
func (s *LedgerServiceImpl) Apply(userID, feedID string) (*dto.FeedResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleCandidate {
		return nil, apperrors.ErrInvalidUserRole
	}

	feed, err := s.feedRepo.FindByIDWithAuthor(feedID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedNotFound) {
			return nil, apperrors.NewNotFoundError("feed", "Feed not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if feed.AuthorID == userID {
		return nil, apperrors.ErrSelfInteraction
	}

	if err := s.ledgerRepo.CreateApplication(userID, feedID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	feed.NoOfApplications++
	s.notifier.NotifyApplication(user, feed)

	resp := dto.NewFeedResponse(feed)
	resp.IsApplied = true
	if reaction, err := s.ledgerRepo.FindReaction(userID, feedID); err == nil {
		resp.IsReacted = true
		resp.RatingValue = reaction.RatingValue
	}
	return resp, nil
}

// ListApplicants shows who applied to a post. Owner only.
func (s *LedgerServiceImpl) ListApplicants(userID, feedID string, page, limit int) (*dto.PaginatedApplicantsResponse, error) {
	feed, err := s.feedRepo.FindByID(feedID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedNotFound) {
			return nil, apperrors.NewNotFoundError("feed", "Feed not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if feed.AuthorID != userID {
		return nil, apperrors.ErrNotFeedOwner
	}

	users, total, err := s.ledgerRepo.FindApplicants(feedID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	applicants := make([]*dto.ApplicantResponse, 0, len(users))
	for i := range users {
		applicants = append(applicants, &dto.ApplicantResponse{
			User:      dto.NewUserResponse(&users[i]),
			IsApplied: true,
		})
	}
	return &dto.PaginatedApplicantsResponse{
		Applicants: applicants,
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

// ReactedFeeds lists the posts the caller has rated, filtered by rating range
// and content. This listing deliberately skips the role and self filters of
// the main feed: it mirrors the reactions table, whatever is in it.
func (s *LedgerServiceImpl) ReactedFeeds(userID string, query *dto.ReactedFeedsQuery) (*dto.PaginatedFeedsResponse, error) {
	filter := repositories.ReactedFilter{
		UserID:    userID,
		MinRating: query.MinRating,
		MaxRating: query.MaxRating,
		Search:    query.Search,
		Page:      query.Page,
		Limit:     query.Limit,
	}

	reacted, total, err := s.ledgerRepo.FindReactedFeeds(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.FeedResponse, 0, len(reacted))
	for i := range reacted {
		resp := dto.NewFeedResponse(&reacted[i].Feed)
		resp.IsReacted = true
		resp.RatingValue = reacted[i].RatingValue
		responses = append(responses, resp)
	}

	feedIDs := make([]string, 0, len(responses))
	for _, resp := range responses {
		feedIDs = append(feedIDs, resp.ID)
	}
	applications, err := s.ledgerRepo.FindApplicationsForFeeds(userID, feedIDs)
	if err == nil {
		for _, resp := range responses {
			resp.IsApplied = applications[resp.ID]
		}
	}

	return &dto.PaginatedFeedsResponse{
		Feeds:      responses,
		Pagination: dto.NewPagination(total, query.Page, query.Limit),
	}, nil
}

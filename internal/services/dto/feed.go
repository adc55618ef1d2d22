package dto

import (
	"time"

	"jobvibes_backend/internal/models"
)

// --- Feed requests ---

type CreateFeedRequest struct {
	Content           string   `json:"content" validate:"omitempty,max=10000"`
	Media             []string `json:"media,omitempty" validate:"omitempty,dive,url"`
	JobTitle          []string `json:"job_title,omitempty"`
	WorkPlaceName     []string `json:"work_place_name,omitempty"`
	JobType           []string `json:"job_type,omitempty" validate:"omitempty,dive,is-job-type"`
	States            []string `json:"states,omitempty"`
	Cities            []string `json:"cities,omitempty"`
	NoticePeriod      *int     `json:"notice_period,omitempty" validate:"omitempty,min=0"`
	IsImmediateJoiner bool     `json:"is_immediate_joiner"`
}

type UpdateFeedRequest struct {
	Content           *string  `json:"content,omitempty" validate:"omitempty,max=10000"`
	Media             []string `json:"media,omitempty" validate:"omitempty,dive,url"`
	JobTitle          []string `json:"job_title,omitempty"`
	WorkPlaceName     []string `json:"work_place_name,omitempty"`
	JobType           []string `json:"job_type,omitempty" validate:"omitempty,dive,is-job-type"`
	States            []string `json:"states,omitempty"`
	Cities            []string `json:"cities,omitempty"`
	NoticePeriod      *int     `json:"notice_period,omitempty" validate:"omitempty,min=0"`
	IsImmediateJoiner *bool    `json:"is_immediate_joiner,omitempty"`
}

type ReactRequest struct {
	RatingValue int `json:"ratingValue" validate:"required,is-rating"`
}

// FeedListQuery carries the optional listing filters. The membership fields
// match one value against the post's targeting arrays.
type FeedListQuery struct {
	Search   string
	JobTitle string
	JobType  string
	State    string
	City     string
	Page     int
	Limit    int
}

// ReactedFeedsQuery filters the viewer's reacted-post listing.
type ReactedFeedsQuery struct {
	MinRating int
	MaxRating int
	Search    string
	Page      int
	Limit     int
}

// --- Feed responses ---

// FeedResponse is one post as the viewer sees it: the post, its author
// summary, and the viewer's own reaction/application state.
type FeedResponse struct {
	ID                string         `json:"id"`
	AuthorID          string         `json:"author_id"`
	AuthorRole        string         `json:"author_role"`
	Status            string         `json:"status"`
	Content           string         `json:"content"`
	Media             []string       `json:"media"`
	JobTitle          []string       `json:"job_title,omitempty"`
	WorkPlaceName     []string       `json:"work_place_name,omitempty"`
	JobType           []string       `json:"job_type,omitempty"`
	States            []string       `json:"states,omitempty"`
	Cities            []string       `json:"cities,omitempty"`
	NoticePeriod      *int           `json:"notice_period,omitempty"`
	IsImmediateJoiner bool           `json:"is_immediate_joiner"`
	NoOfReactions     int            `json:"noOfReactions"`
	NoOfApplications  int            `json:"noOfApplications"`
	CreatedAt         time.Time      `json:"created_at"`
	Author            *AuthorSummary `json:"author,omitempty"`

	// Viewer annotations
	IsReacted   bool `json:"isReacted"`
	RatingValue int  `json:"ratingValue"`
	IsApplied   bool `json:"is_applied"`
}

func NewFeedResponse(feed *models.Feed) *FeedResponse {
	return &FeedResponse{
		ID:                feed.ID,
		AuthorID:          feed.AuthorID,
		AuthorRole:        string(feed.AuthorRole),
		Status:            string(feed.Status),
		Content:           feed.Content,
		Media:             feed.GetMedia(),
		JobTitle:          jsonStrings(feed.JobTitle),
		WorkPlaceName:     jsonStrings(feed.WorkPlaceName),
		JobType:           jsonStrings(feed.JobType),
		States:            jsonStrings(feed.States),
		Cities:            jsonStrings(feed.Cities),
		NoticePeriod:      feed.NoticePeriod,
		IsImmediateJoiner: feed.IsImmediateJoiner,
		NoOfReactions:     feed.NoOfReactions,
		NoOfApplications:  feed.NoOfApplications,
		CreatedAt:         feed.CreatedAt,
		Author:            NewAuthorSummary(feed.Author),
	}
}

type PaginatedFeedsResponse struct {
	Feeds      []*FeedResponse `json:"feeds"`
	Pagination Pagination      `json:"pagination"`
}

// ApplicantResponse is one applicant row in the owner's listing.
type ApplicantResponse struct {
	User      *UserResponse `json:"user"`
	IsApplied bool          `json:"is_applied"`
}

type PaginatedApplicantsResponse struct {
	Applicants []*ApplicantResponse `json:"applicants"`
	Pagination Pagination           `json:"pagination"`
}

package services

import (
	"fmt"
	"testing"

	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageQuery(page, limit int) *dto.FeedListQuery {
	return &dto.FeedListQuery{Page: page, Limit: limit}
}

func TestCreateFeed_ActivatesUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	resp, err := env.feeds.CreateFeed(user.ID, &dto.CreateFeedRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, string(models.UserRoleCandidate), resp.AuthorRole)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsFeedPosted)
	assert.Equal(t, models.UserStatusActive, stored.Status)
}

func TestCreateFeed_RequiresContentOrMedia(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	_, err := env.feeds.CreateFeed(user.ID, &dto.CreateFeedRequest{})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)

	// Media alone is enough.
	_, err = env.feeds.CreateFeed(user.ID, &dto.CreateFeedRequest{
		Media: []string{"https://cdn.example.com/a.jpg"},
	})
	assert.NoError(t, err)
}

func TestCreateFeed_RequiresRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", "")

	_, err := env.feeds.CreateFeed(user.ID, &dto.CreateFeedRequest{Content: "hi"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestGetFeeds_ShowsOppositeRoleOnly(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	otherCandidate := env.createUser(t, "+101", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)

	env.createFeed(t, candidate, "my own post")
	env.createFeed(t, otherCandidate, "peer post")
	employerFeed := env.createFeed(t, employer, "job opening")

	resp, err := env.feeds.GetFeeds(candidate.ID, pageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 1)
	assert.Equal(t, employerFeed.ID, resp.Feeds[0].ID)

	// The employer sees candidate posts and never their own.
	resp, err = env.feeds.GetFeeds(employer.ID, pageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 2)
	for _, feed := range resp.Feeds {
		assert.NotEqual(t, employer.ID, feed.AuthorID)
		assert.Equal(t, string(models.UserRoleCandidate), feed.AuthorRole)
	}
}

func TestExploreFeeds_ExcludesOnlySelf(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	peer := env.createUser(t, "+101", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)

	env.createFeed(t, candidate, "mine")
	env.createFeed(t, peer, "peer")
	env.createFeed(t, employer, "job")

	resp, err := env.feeds.ExploreFeeds(candidate.ID, pageQuery(1, 10))
	require.NoError(t, err)
	assert.Len(t, resp.Feeds, 2)
	for _, feed := range resp.Feeds {
		assert.NotEqual(t, candidate.ID, feed.AuthorID)
	}
}

func TestGetFeeds_Pagination(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)

	for i := 0; i < 25; i++ {
		env.createFeed(t, employer, fmt.Sprintf("post %d", i))
	}

	resp, err := env.feeds.GetFeeds(candidate.ID, pageQuery(3, 10))
	require.NoError(t, err)
	assert.Len(t, resp.Feeds, 5)
	assert.Equal(t, int64(25), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 3, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
}

func TestGetMyFeeds_ReconcilesPostedFlag(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.IsFeedPosted = true
	})

	// The flag says posted but the table is empty.
	resp, err := env.feeds.GetMyFeeds(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Feeds)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.False(t, stored.IsFeedPosted)
}

func TestDeleteFeed_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "+100", models.UserRoleEmployer)
	other := env.createUser(t, "+101", models.UserRoleCandidate)
	feed := env.createFeed(t, owner, "job")

	err := env.feeds.DeleteFeed(other.ID, feed.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFeedOwner)

	require.NoError(t, env.feeds.DeleteFeed(owner.ID, feed.ID))

	// Removing the last post reopens the onboarding step.
	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", owner.ID).Error)
	assert.False(t, stored.IsFeedPosted)
}

func TestUpdateFeed_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "+100", models.UserRoleEmployer)
	other := env.createUser(t, "+101", models.UserRoleCandidate)
	feed := env.createFeed(t, owner, "original")

	newContent := "updated"
	_, err := env.feeds.UpdateFeed(other.ID, feed.ID, &dto.UpdateFeedRequest{Content: &newContent})
	assert.ErrorIs(t, err, apperrors.ErrNotFeedOwner)

	resp, err := env.feeds.UpdateFeed(owner.ID, feed.ID, &dto.UpdateFeedRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "updated", resp.Content)
}

func TestGetFeeds_TargetingFilters(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)

	engineering, err := env.feeds.CreateFeed(employer.ID, &dto.CreateFeedRequest{
		Content:  "backend role",
		JobTitle: []string{"Engineer", "Developer"},
		States:   []string{"Almaty"},
	})
	require.NoError(t, err)
	_, err = env.feeds.CreateFeed(employer.ID, &dto.CreateFeedRequest{
		Content:  "driver role",
		JobTitle: []string{"Driver"},
		States:   []string{"Astana"},
	})
	require.NoError(t, err)

	resp, err := env.feeds.GetFeeds(candidate.ID, &dto.FeedListQuery{
		JobTitle: "Engineer",
		Page:     1,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 1)
	assert.Equal(t, engineering.ID, resp.Feeds[0].ID)

	resp, err = env.feeds.GetFeeds(candidate.ID, &dto.FeedListQuery{
		JobTitle: "Engineer",
		State:    "Astana",
		Page:     1,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Feeds)
}

func TestHiringFlow(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)

	created, err := env.feeds.CreateFeed(employer.ID, &dto.CreateFeedRequest{
		Content:  "Hiring now",
		JobTitle: []string{"Engineer"},
	})
	require.NoError(t, err)

	// The candidate has to post before reacting.
	_, err = env.feeds.CreateFeed(candidate.ID, &dto.CreateFeedRequest{Content: "open to work"})
	require.NoError(t, err)

	listing, err := env.feeds.GetFeeds(candidate.ID, pageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, listing.Feeds, 1)
	assert.False(t, listing.Feeds[0].IsReacted)
	assert.False(t, listing.Feeds[0].IsApplied)

	reacted, err := env.ledger.React(candidate.ID, created.ID, &dto.ReactRequest{RatingValue: 4})
	require.NoError(t, err)
	assert.True(t, reacted.IsReacted)
	assert.Equal(t, 4, reacted.RatingValue)
	assert.Equal(t, 1, reacted.NoOfReactions)

	applied, err := env.ledger.Apply(candidate.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, applied.IsApplied)
	assert.Equal(t, 1, applied.NoOfApplications)

	applicants, err := env.ledger.ListApplicants(employer.ID, created.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, applicants.Applicants, 1)
	assert.Equal(t, candidate.ID, applicants.Applicants[0].User.ID)
}

func TestGetFeeds_SearchFiltersContent(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)

	env.createFeed(t, employer, "golang backend engineer")
	env.createFeed(t, employer, "warehouse operator")

	resp, err := env.feeds.GetFeeds(candidate.ID, &dto.FeedListQuery{Search: "golang", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 1)
	assert.Contains(t, resp.Feeds[0].Content, "golang")
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

package services

import (
	"testing"

	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReact_RequiresOwnPostFirst(t *testing.T) {
	env := newTestEnv(t)
	lurker := env.createUser(t, "+100", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)
	feed := env.createFeed(t, employer, "job")

	_, err := env.ledger.React(lurker.ID, feed.ID, &dto.ReactRequest{RatingValue: 4})
	assert.ErrorIs(t, err, apperrors.ErrReactionNotAllowed)

	// The gate fires even when the target does not exist.
	_, err = env.ledger.React(lurker.ID, "no-such-feed", &dto.ReactRequest{RatingValue: 4})
	assert.ErrorIs(t, err, apperrors.ErrReactionNotAllowed)
}

func TestReact_SelfReactionForbidden(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, "+200", models.UserRoleEmployer, func(u *models.User) {
		u.IsFeedPosted = true
	})
	feed := env.createFeed(t, employer, "job")

	_, err := env.ledger.React(employer.ID, feed.ID, &dto.ReactRequest{RatingValue: 5})
	assert.ErrorIs(t, err, apperrors.ErrSelfInteraction)
}

func TestReact_FirstReactionCountsRepeatOverwrites(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.IsFeedPosted = true
	})
	employer := env.createUser(t, "+200", models.UserRoleEmployer)
	feed := env.createFeed(t, employer, "job")

	resp, err := env.ledger.React(candidate.ID, feed.ID, &dto.ReactRequest{RatingValue: 3})
	require.NoError(t, err)
	assert.True(t, resp.IsReacted)
	assert.Equal(t, 3, resp.RatingValue)

	var stored models.Feed
	require.NoError(t, env.db.First(&stored, "id = ?", feed.ID).Error)
	assert.Equal(t, 1, stored.NoOfReactions)

	// A second reaction replaces the rating but never moves the counter.
	resp, err = env.ledger.React(candidate.ID, feed.ID, &dto.ReactRequest{RatingValue: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.RatingValue)

	require.NoError(t, env.db.First(&stored, "id = ?", feed.ID).Error)
	assert.Equal(t, 1, stored.NoOfReactions)

	var count int64
	require.NoError(t, env.db.Model(&models.Reaction{}).
		Where("user_id = ? AND feed_id = ?", candidate.ID, feed.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApply_CandidatesOnly(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)
	other := env.createUser(t, "+201", models.UserRoleEmployer)
	feed := env.createFeed(t, other, "job")

	_, err := env.ledger.Apply(employer.ID, feed.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestApply_SelfApplicationForbidden(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	feed := env.createFeed(t, candidate, "looking for work")

	_, err := env.ledger.Apply(candidate.ID, feed.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfInteraction)
}

func TestApply_RepeatApplicationCountsAgain(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)
	feed := env.createFeed(t, employer, "job")

	resp, err := env.ledger.Apply(candidate.ID, feed.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsApplied)

	_, err = env.ledger.Apply(candidate.ID, feed.ID)
	require.NoError(t, err)

	var stored models.Feed
	require.NoError(t, env.db.First(&stored, "id = ?", feed.ID).Error)
	assert.Equal(t, 2, stored.NoOfApplications)

	var rows int64
	require.NoError(t, env.db.Model(&models.Application{}).
		Where("user_id = ? AND feed_id = ?", candidate.ID, feed.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestListApplicants_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, "+200", models.UserRoleEmployer)
	rival := env.createUser(t, "+201", models.UserRoleEmployer)
	first := env.createUser(t, "+100", models.UserRoleCandidate)
	second := env.createUser(t, "+101", models.UserRoleCandidate)
	feed := env.createFeed(t, employer, "job")

	_, err := env.ledger.Apply(first.ID, feed.ID)
	require.NoError(t, err)
	_, err = env.ledger.Apply(second.ID, feed.ID)
	require.NoError(t, err)
	// A repeat application must not duplicate the applicant listing.
	_, err = env.ledger.Apply(first.ID, feed.ID)
	require.NoError(t, err)

	_, err = env.ledger.ListApplicants(rival.ID, feed.ID, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFeedOwner)

	resp, err := env.ledger.ListApplicants(employer.ID, feed.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Applicants, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestReactedFeeds_FiltersByRating(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.IsFeedPosted = true
	})
	employer := env.createUser(t, "+200", models.UserRoleEmployer)

	liked := env.createFeed(t, employer, "great job")
	disliked := env.createFeed(t, employer, "meh job")

	_, err := env.ledger.React(candidate.ID, liked.ID, &dto.ReactRequest{RatingValue: 5})
	require.NoError(t, err)
	_, err = env.ledger.React(candidate.ID, disliked.ID, &dto.ReactRequest{RatingValue: 2})
	require.NoError(t, err)

	resp, err := env.ledger.ReactedFeeds(candidate.ID, &dto.ReactedFeedsQuery{
		MinRating: 4,
		Page:      1,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Feeds, 1)
	assert.Equal(t, liked.ID, resp.Feeds[0].ID)
	assert.True(t, resp.Feeds[0].IsReacted)
	assert.Equal(t, 5, resp.Feeds[0].RatingValue)
}

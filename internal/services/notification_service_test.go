package services

import (
	"testing"
	"time"

	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyNewPost_FansOutToTokenHolders(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createUser(t, "+100", models.UserRoleEmployer, func(u *models.User) {
		u.FCMToken = "poster-token"
	})
	first := env.createUser(t, "+101", models.UserRoleCandidate, func(u *models.User) {
		u.FCMToken = "token-1"
	})
	second := env.createUser(t, "+102", models.UserRoleCandidate, func(u *models.User) {
		u.FCMToken = "token-2"
	})
	env.createUser(t, "+103", models.UserRoleCandidate) // no device registered

	_, err := env.feeds.CreateFeed(poster.ID, &dto.CreateFeedRequest{Content: "job opening"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(env.sender.messages()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	tokens := map[string]bool{}
	for _, msg := range env.sender.messages() {
		tokens[msg.Token] = true
		assert.Equal(t, "new_post", msg.Data["type"])
	}
	assert.True(t, tokens[first.FCMToken])
	assert.True(t, tokens[second.FCMToken])
	assert.False(t, tokens["poster-token"])
}

func TestNotifyReaction_ReachesAuthorAndInbox(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "+200", models.UserRoleEmployer, func(u *models.User) {
		u.FCMToken = "author-token"
	})
	reactor := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.IsFeedPosted = true
		u.Name = "Aizhan"
	})
	feed := env.createFeed(t, author, "job")

	_, err := env.ledger.React(reactor.ID, feed.ID, &dto.ReactRequest{RatingValue: 5})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(env.sender.messages()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	msg := env.sender.messages()[0]
	assert.Equal(t, "author-token", msg.Token)
	assert.Contains(t, msg.Body, "Aizhan")

	// The attempt also lands in the author's inbox.
	assert.Eventually(t, func() bool {
		resp, err := env.notifier.ListNotifications(author.ID, 1, 10)
		return err == nil && len(resp.Notifications) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotify_SkipsAuthorsWithoutDevice(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "+200", models.UserRoleEmployer)
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	feed := env.createFeed(t, author, "job")

	_, err := env.ledger.Apply(candidate.ID, feed.ID)
	require.NoError(t, err)

	env.notifier.Shutdown()
	assert.Empty(t, env.sender.messages())
}

func TestFailedDeliveries_LoggedButHiddenFromInbox(t *testing.T) {
	env := newTestEnv(t)
	env.sender.fail = true

	author := env.createUser(t, "+200", models.UserRoleEmployer, func(u *models.User) {
		u.FCMToken = "author-token"
	})
	candidate := env.createUser(t, "+100", models.UserRoleCandidate)
	feed := env.createFeed(t, author, "job")

	_, err := env.ledger.Apply(candidate.ID, feed.ID)
	require.NoError(t, err)

	var entry models.NotificationLog
	assert.Eventually(t, func() bool {
		return env.db.Where("receiver_id = ?", author.ID).First(&entry).Error == nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, models.DispatchStatusFailed, entry.Status)
	assert.NotEmpty(t, entry.Error)

	resp, err := env.notifier.ListNotifications(author.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Notifications)
}

func TestShutdown_DrainsQueueAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "+200", models.UserRoleEmployer, func(u *models.User) {
		u.FCMToken = "author-token"
	})
	reactor := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.IsFeedPosted = true
	})

	for i := 0; i < 5; i++ {
		feed := env.createFeed(t, author, "job")
		_, err := env.ledger.React(reactor.ID, feed.ID, &dto.ReactRequest{RatingValue: 4})
		require.NoError(t, err)
	}

	env.notifier.Shutdown()
	assert.Len(t, env.sender.messages(), 5)

	// The cleanup hook calls Shutdown again; it must not panic.
	env.notifier.Shutdown()
}

func TestNotify_AfterShutdownIsDropped(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "+200", models.UserRoleEmployer, func(u *models.User) {
		u.FCMToken = "author-token"
	})
	actor := env.createUser(t, "+100", models.UserRoleCandidate)
	feed := env.createFeed(t, author, "job")
	feed.Author = author

	env.notifier.Shutdown()

	// A post created while the server is draining must not crash the
	// process; its pushes are simply dropped.
	assert.NotPanics(t, func() {
		env.notifier.NotifyReaction(actor, feed)
		env.notifier.NotifyNewPost(actor, feed)
	})

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, env.sender.messages())
}

func TestSaveCredential_Persists(t *testing.T) {
	env := newTestEnv(t)

	err := env.notifier.SaveCredential(&dto.SaveCredentialRequest{
		Credential: map[string]interface{}{
			"type":       "service_account",
			"project_id": "jobvibes-test",
		},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.FirebaseCredential{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

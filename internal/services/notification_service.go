package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/push"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

const dispatchQueueSize = 256

type NotificationService interface {
	NotifyNewPost(poster *models.User, feed *models.Feed)
	NotifyReaction(actor *models.User, feed *models.Feed)
	NotifyApplication(actor *models.User, feed *models.Feed)
	ListNotifications(userID string, page, limit int) (*dto.PaginatedNotificationsResponse, error)
	SaveCredential(req *dto.SaveCredentialRequest) error
	Shutdown()
}

// dispatchJob is one queued device push.
type dispatchJob struct {
	title      string
	body       string
	postedBy   string
	receiverID string
	token      string
	data       map[string]string
}

// NotificationServiceImpl fans pushes out through a single worker goroutine.
// Delivery is best effort: a full queue drops the push rather than blocking
// the request that triggered it, and every attempt is logged either way.
type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	sender           push.Sender

	jobs chan dispatchJob
	wg   sync.WaitGroup
	once sync.Once

	// mu orders enqueue against close: NotifyNewPost enqueues from its own
	// goroutine, which can race a graceful shutdown.
	mu     sync.Mutex
	closed bool
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	sender push.Sender,
) *NotificationServiceImpl {
	s := &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		jobs:             make(chan dispatchJob, dispatchQueueSize),
	}
	s.wg.Add(1)
	go s.worker()
	return s
}

// NotifyNewPost tells every other user with a registered device about a new
// post. The recipient query runs off the request goroutine.
func (s *NotificationServiceImpl) NotifyNewPost(poster *models.User, feed *models.Feed) {
	title := "New post on the feed"
	body := fmt.Sprintf("%s just posted. Check it out!", displayName(poster))

	go func() {
		receivers, err := s.userRepo.FindAllWithTokens(poster.ID)
		if err != nil {
			logger.WithError(err).Error("failed to load push recipients", "feed_id", feed.ID)
			return
		}
		for i := range receivers {
			s.enqueue(dispatchJob{
				title:      title,
				body:       body,
				postedBy:   poster.ID,
				receiverID: receivers[i].ID,
				token:      receivers[i].FCMToken,
				data:       map[string]string{"type": "new_post", "feed_id": feed.ID},
			})
		}
	}()
}

// NotifyReaction tells the post author about a first-time reaction.
func (s *NotificationServiceImpl) NotifyReaction(actor *models.User, feed *models.Feed) {
	if feed.Author == nil || feed.Author.FCMToken == "" {
		return
	}
	s.enqueue(dispatchJob{
		title:      "New reaction",
		body:       fmt.Sprintf("%s reacted to your post", displayName(actor)),
		postedBy:   actor.ID,
		receiverID: feed.AuthorID,
		token:      feed.Author.FCMToken,
		data:       map[string]string{"type": "reaction", "feed_id": feed.ID},
	})
}

// NotifyApplication tells the post author about a new application.
func (s *NotificationServiceImpl) NotifyApplication(actor *models.User, feed *models.Feed) {
	if feed.Author == nil || feed.Author.FCMToken == "" {
		return
	}
	s.enqueue(dispatchJob{
		title:      "New application",
		body:       fmt.Sprintf("%s applied to your post", displayName(actor)),
		postedBy:   actor.ID,
		receiverID: feed.AuthorID,
		token:      feed.Author.FCMToken,
		data:       map[string]string{"type": "application", "feed_id": feed.ID},
	})
}

func (s *NotificationServiceImpl) ListNotifications(userID string, page, limit int) (*dto.PaginatedNotificationsResponse, error) {
	logs, total, err := s.notificationRepo.FindByReceiver(userID, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	notifications := make([]*dto.NotificationResponse, 0, len(logs))
	for i := range logs {
		notifications = append(notifications, dto.NewNotificationResponse(&logs[i]))
	}
	return &dto.PaginatedNotificationsResponse{
		Notifications: notifications,
		Pagination:    dto.NewPagination(total, page, limit),
	}, nil
}

// SaveCredential stores the push service-account key. The FCM client picks
// it up lazily on the next send.
func (s *NotificationServiceImpl) SaveCredential(req *dto.SaveCredentialRequest) error {
	raw, err := json.Marshal(req.Credential)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid credential payload")
	}
	cred := &models.FirebaseCredential{Data: datatypes.JSON(raw)}
	if err := s.userRepo.SaveFirebaseCredential(cred); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Shutdown drains the queue and stops the worker. Pushes enqueued after
// shutdown are dropped.
func (s *NotificationServiceImpl) Shutdown() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.jobs)
		s.mu.Unlock()
	})
	s.wg.Wait()
}

func (s *NotificationServiceImpl) enqueue(job dispatchJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		logger.Warn("push queue closed, dropping notification", "receiver_id", job.receiverID)
		return
	}
	select {
	case s.jobs <- job:
	default:
		logger.Warn("push queue full, dropping notification", "receiver_id", job.receiverID)
	}
}

func (s *NotificationServiceImpl) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		s.deliver(job)
	}
}

func (s *NotificationServiceImpl) deliver(job dispatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.sender.Send(ctx, push.Message{
		Token: job.token,
		Title: job.title,
		Body:  job.body,
		Data:  job.data,
	})
	logger.DispatchLog("push", job.token, err)

	entry := &models.NotificationLog{
		Title:      job.title,
		Body:       job.body,
		PostedBy:   job.postedBy,
		ReceiverID: job.receiverID,
		Token:      job.token,
		SentAt:     time.Now(),
		Status:     models.DispatchStatusSuccess,
	}
	entry.SetData(job.data)
	if err != nil {
		entry.Status = models.DispatchStatusFailed
		entry.Error = err.Error()
	}
	if logErr := s.notificationRepo.CreateLog(entry); logErr != nil {
		logger.WithError(logErr).Error("failed to record notification log", "receiver_id", job.receiverID)
	}
}

func displayName(user *models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.UserName
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"jobvibes_backend/internal/config"
	"jobvibes_backend/internal/email"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/push"
	"jobvibes_backend/internal/repositories"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTTLSec = 3600
	cfg.JWT.RefreshTTLSec = 7200
	cfg.OTP.PhoneTTLSec = 300
	cfg.OTP.EmailTTLSec = 900
	cfg.Upload.MaxSize = 50 * 1024 * 1024
	cfg.Upload.ImageQuality = 70
	cfg.Upload.CompressThreshold = 2 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "video/mp4", "application/pdf"}
	config.AppConfig = cfg
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Otp{},
		&models.FirebaseCredential{},
		&models.Feed{},
		&models.Reaction{},
		&models.Application{},
		&models.NotificationLog{},
		&models.Skill{},
		&models.JobTitle{},
		&models.State{},
		&models.City{},
		&models.File{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// fakeSender records pushes instead of talking to FCM. Fail lets a test
// force delivery errors.
type fakeSender struct {
	mu   sync.Mutex
	sent []push.Message
	fail bool
}

func (f *fakeSender) Send(_ context.Context, msg push.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []push.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]push.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

// fakeEmailProvider records outgoing mail.
type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []*email.Email
}

func (f *fakeEmailProvider) Send(e *email.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return nil
}

func (f *fakeEmailProvider) SendWithTemplate(_ string, _ email.TemplateData, e *email.Email) error {
	return f.Send(e)
}

func (f *fakeEmailProvider) Validate() error { return nil }
func (f *fakeEmailProvider) Close() error    { return nil }

// testEnv bundles the service graph over one test database.
type testEnv struct {
	db       *gorm.DB
	sender   *fakeSender
	mailer   *fakeEmailProvider
	auth     AuthService
	users    UserService
	feeds    FeedService
	ledger   LedgerService
	notifier *NotificationServiceImpl
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	feedRepo := repositories.NewFeedRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)

	sender := &fakeSender{}
	mailer := &fakeEmailProvider{}
	notifier := NewNotificationService(notificationRepo, userRepo, sender)
	t.Cleanup(notifier.Shutdown)

	return &testEnv{
		db:       db,
		sender:   sender,
		mailer:   mailer,
		auth:     NewAuthService(userRepo, mailer),
		users:    NewUserService(userRepo, catalogRepo),
		feeds:    NewFeedService(feedRepo, ledgerRepo, userRepo, notifier),
		ledger:   NewLedgerService(ledgerRepo, feedRepo, userRepo, notifier),
		notifier: notifier,
	}
}

func (e *testEnv) createUser(t *testing.T, phone string, role models.UserRole, mutate ...func(*models.User)) *models.User {
	t.Helper()

	user := &models.User{
		UserName:    phone,
		PhoneNumber: phone,
		Role:        role,
	}
	for _, fn := range mutate {
		fn(user)
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func (e *testEnv) createFeed(t *testing.T, author *models.User, content string) *models.Feed {
	t.Helper()

	feed := &models.Feed{
		AuthorID:   author.ID,
		AuthorRole: author.Role,
		Content:    content,
	}
	if err := e.db.Create(feed).Error; err != nil {
		t.Fatalf("failed to create test feed: %v", err)
	}
	return feed
}

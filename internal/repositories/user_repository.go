package repositories

import (
	"errors"
	"time"

	"jobvibes_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSessionNotFound   = errors.New("session not found")
	ErrOtpNotFound       = errors.New("otp not found")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(userID string, fields map[string]interface{}) error
	Delete(userID string) error
	FindAllWithTokens(excludeUserID string) ([]models.User, error)
	FindByIDs(ids []string) ([]models.User, error)

	// Session operations
	CreateSession(session *models.Session) error
	FindSession(id string) (*models.Session, error)
	FindSessionByResetToken(token string) (*models.Session, error)
	RevokeSession(id string) error
	RevokeUserSessions(userID string) error
	CleanExpiredSessions() error

	// OTP operations
	SaveOtp(otp *models.Otp) error
	FindOtpByPhone(phone string) (*models.Otp, error)
	FindOtpByEmail(email string) (*models.Otp, error)
	DeleteOtp(id string) error
	CleanExpiredOtps() error

	// Push credential operations
	GetFirebaseCredential() (*models.FirebaseCredential, error)
	SaveFirebaseCredential(cred *models.FirebaseCredential) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// User operations

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "phone_number = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateFields applies a partial update without touching the other columns.
func (r *UserRepositoryImpl) UpdateFields(userID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Delete(&models.User{}, "id = ?", userID).Error
}

// FindAllWithTokens returns every user holding a device token, except the
// excluded one. Used for broadcast fan-out.
func (r *UserRepositoryImpl) FindAllWithTokens(excludeUserID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("fcm_token <> ''").
		Where("id <> ?", excludeUserID).
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Session operations

func (r *UserRepositoryImpl) CreateSession(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *UserRepositoryImpl) FindSession(id string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *UserRepositoryImpl) FindSessionByResetToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "reset_token = ? AND revoked = ?", token, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *UserRepositoryImpl) RevokeSession(id string) error {
	now := time.Now()
	return r.db.Model(&models.Session{}).Where("id = ?", id).
		Updates(map[string]interface{}{"revoked": true, "revoked_at": &now}).Error
}

func (r *UserRepositoryImpl) RevokeUserSessions(userID string) error {
	now := time.Now()
	return r.db.Model(&models.Session{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]interface{}{"revoked": true, "revoked_at": &now}).Error
}

func (r *UserRepositoryImpl) CleanExpiredSessions() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

// OTP operations

// SaveOtp replaces any previous code issued for the same phone or email so a
// resend invalidates the older one.
func (r *UserRepositoryImpl) SaveOtp(otp *models.Otp) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if otp.Phone != "" {
			if err := tx.Where("phone = ?", otp.Phone).Delete(&models.Otp{}).Error; err != nil {
				return err
			}
		}
		if otp.Email != "" {
			if err := tx.Where("email = ?", otp.Email).Delete(&models.Otp{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(otp).Error
	})
}

func (r *UserRepositoryImpl) FindOtpByPhone(phone string) (*models.Otp, error) {
	var otp models.Otp
	err := r.db.Order("created_at DESC").First(&otp, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *UserRepositoryImpl) FindOtpByEmail(email string) (*models.Otp, error) {
	var otp models.Otp
	err := r.db.Order("created_at DESC").First(&otp, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *UserRepositoryImpl) DeleteOtp(id string) error {
	return r.db.Delete(&models.Otp{}, "id = ?", id).Error
}

func (r *UserRepositoryImpl) CleanExpiredOtps() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.Otp{}).Error
}

// Push credential operations

func (r *UserRepositoryImpl) GetFirebaseCredential() (*models.FirebaseCredential, error) {
	var cred models.FirebaseCredential
	err := r.db.Order("created_at DESC").First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *UserRepositoryImpl) SaveFirebaseCredential(cred *models.FirebaseCredential) error {
	return r.db.Create(cred).Error
}

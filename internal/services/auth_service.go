package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"jobvibes_backend/internal/auth"
	"jobvibes_backend/internal/config"
	"jobvibes_backend/internal/email"
	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// The email verification code is fixed until the mail provider goes live.
// TODO: generate real codes once the SMTP account is provisioned.
const emailOtpCode = "123456"

type AuthService interface {
	SendPhoneOtp(req *dto.SendOtpRequest) error
	VerifyPhoneOtp(req *dto.VerifyOtpRequest, userAgent, ip string) (*dto.AuthResponse, error)
	SendEmailOtp(userID string, req *dto.SendEmailOtpRequest) error
	VerifyEmailOtp(userID string, req *dto.VerifyEmailOtpRequest) error
	SetPassword(userID string, req *dto.SetPasswordRequest) error
	Login(req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error)
	RefreshTokens(refreshToken string) (*dto.TokenResponse, error)
	Logout(sessionID string) error
	ForgotPassword(req *dto.ForgotPasswordRequest) error
	ResetPassword(req *dto.ResetPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// SendPhoneOtp issues a fresh sign-in code for the phone number. The code for
// an unknown number still gets stored; the account is created on verify.
func (s *AuthServiceImpl) SendPhoneOtp(req *dto.SendOtpRequest) error {
	cfg := config.GetConfig()

	code, err := generateOtpCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	otp := &models.Otp{
		Phone:     req.PhoneNumber,
		Code:      code,
		ExpiresAt: time.Now().Add(time.Duration(cfg.OTP.PhoneTTLSec) * time.Second),
	}
	if err := s.userRepo.SaveOtp(otp); err != nil {
		return apperrors.InternalError(err)
	}

	// SMS delivery is handled by the gateway; in development the code lands
	// in the log instead.
	if cfg.Server.Env == "development" {
		logger.Info("phone otp issued", "phone", req.PhoneNumber, "code", code)
	}
	return nil
}

// VerifyPhoneOtp checks the code and signs the caller in, creating the
// account on first contact.
func (s *AuthServiceImpl) VerifyPhoneOtp(req *dto.VerifyOtpRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	otp, err := s.userRepo.FindOtpByPhone(req.PhoneNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrOtpNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid or expired OTP")
		}
		return nil, apperrors.InternalError(err)
	}
	if otp.Code != req.Otp || time.Now().After(otp.ExpiresAt) {
		return nil, apperrors.NewBadRequestError("Invalid or expired OTP")
	}
	_ = s.userRepo.DeleteOtp(otp.ID)

	isNewUser := false
	user, err := s.userRepo.FindByPhone(req.PhoneNumber)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		user = &models.User{
			UserName:    req.PhoneNumber,
			PhoneNumber: req.PhoneNumber,
			FCMToken:    req.FCMToken,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
		isNewUser = true
	} else if req.FCMToken != "" && req.FCMToken != user.FCMToken {
		if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"fcm_token": req.FCMToken}); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.FCMToken = req.FCMToken
	}

	return s.openSession(user, isNewUser, userAgent, ip)
}

// SendEmailOtp stores a verification code for the email the caller wants on
// their profile and mails it out.
func (s *AuthServiceImpl) SendEmailOtp(userID string, req *dto.SendEmailOtpRequest) error {
	cfg := config.GetConfig()

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.NewNotFoundError("user", "User not found")
	}

	otp := &models.Otp{
		Email:     req.Email,
		Code:      emailOtpCode,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Duration(cfg.OTP.EmailTTLSec) * time.Second),
	}
	if err := s.userRepo.SaveOtp(otp); err != nil {
		return apperrors.InternalError(err)
	}

	mail := &email.Email{
		To:      []string{req.Email},
		Subject: "Verify your email",
	}
	data := email.TemplateData{
		"Name":           user.UserName,
		"Code":           emailOtpCode,
		"ExpiresMinutes": cfg.OTP.EmailTTLSec / 60,
	}
	if err := s.emailProvider.SendWithTemplate("verification_code", data, mail); err != nil {
		// The stored code still works; delivery failure is not fatal.
		logger.WithError(err).Warn("failed to send verification email", "email", req.Email)
	}
	return nil
}

// VerifyEmailOtp attaches the verified email to the profile.
func (s *AuthServiceImpl) VerifyEmailOtp(userID string, req *dto.VerifyEmailOtpRequest) error {
	otp, err := s.userRepo.FindOtpByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrOtpNotFound) {
			return apperrors.NewBadRequestError("Invalid or expired OTP")
		}
		return apperrors.InternalError(err)
	}
	if otp.UserID != userID || otp.Code != req.Otp || time.Now().After(otp.ExpiresAt) {
		return apperrors.NewBadRequestError("Invalid or expired OTP")
	}
	_ = s.userRepo.DeleteOtp(otp.ID)

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"email": req.Email}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) SetPassword(userID string, req *dto.SetPasswordRequest) error {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"password": hash}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Password == "" || !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if req.FCMToken != "" && req.FCMToken != user.FCMToken {
		if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"fcm_token": req.FCMToken}); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.FCMToken = req.FCMToken
	}

	return s.openSession(user, false, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(refreshToken string) (*dto.TokenResponse, error) {
	claims, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid refresh token", 401)
	}

	session, err := s.userRepo.FindSession(claims.ID)
	if err != nil || session.Revoked {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Session is no longer valid", 401)
	}

	tokens, err := auth.IssueTokens(claims.Subject, session.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (s *AuthServiceImpl) Logout(sessionID string) error {
	if err := s.userRepo.RevokeSession(sessionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ForgotPassword issues a reset token. The response is identical whether the
// email exists or not, so the endpoint cannot be used to probe accounts.
func (s *AuthServiceImpl) ForgotPassword(req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	expiresAt := time.Now().Add(15 * time.Minute)
	session := &models.Session{
		UserID:     user.ID,
		Purpose:    "password_reset",
		ResetToken: uuid.NewString(),
		ExpiresAt:  &expiresAt,
	}
	if err := s.userRepo.CreateSession(session); err != nil {
		return apperrors.InternalError(err)
	}

	mail := &email.Email{
		To:      []string{user.Email},
		Subject: "Reset your password",
	}
	data := email.TemplateData{
		"Name":           user.UserName,
		"Token":          session.ResetToken,
		"ExpiresMinutes": 15,
	}
	if err := s.emailProvider.SendWithTemplate("password_reset", data, mail); err != nil {
		logger.WithError(err).Warn("failed to send password reset email", "email", user.Email)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	session, err := s.userRepo.FindSessionByResetToken(req.Token)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid or expired reset token")
	}
	if session.Purpose != "password_reset" ||
		session.ExpiresAt == nil || time.Now().After(*session.ExpiresAt) {
		return apperrors.NewBadRequestError("Invalid or expired reset token")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(session.UserID, map[string]interface{}{"password": hash}); err != nil {
		return apperrors.InternalError(err)
	}

	// A successful reset invalidates every open session for the account.
	if err := s.userRepo.RevokeUserSessions(session.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) openSession(user *models.User, isNewUser bool, userAgent, ip string) (*dto.AuthResponse, error) {
	session := &models.Session{
		UserID:    user.ID,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.userRepo.CreateSession(session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	tokens, err := auth.IssueTokens(user.ID, session.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userResp := dto.NewUserResponse(user)
	steps := ComputeStepStatus(user)
	userResp.StepStatus = &steps

	return &dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		IsNewUser:    isNewUser,
		User:         userResp,
	}, nil
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

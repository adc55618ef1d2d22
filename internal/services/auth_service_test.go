package services

import (
	"testing"
	"time"

	"jobvibes_backend/internal/auth"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issuedOtp digs the stored code out of the database the way an SMS
// gateway webhook would deliver it.
func issuedOtp(t *testing.T, env *testEnv, phone string) string {
	t.Helper()
	var otp models.Otp
	require.NoError(t, env.db.Where("phone = ?", phone).Order("created_at DESC").First(&otp).Error)
	return otp.Code
}

func TestPhoneOtp_SignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)
	phone := "+77001234567"

	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))
	code := issuedOtp(t, env, phone)
	require.Len(t, code, 6)

	resp, err := env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         code,
		FCMToken:    "device-token-1",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, phone, resp.User.PhoneNumber)
	require.NotNil(t, resp.User.StepStatus)
	assert.False(t, resp.User.StepStatus.Step1)

	// A second sign-in finds the existing account and updates the token.
	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))
	code = issuedOtp(t, env, phone)
	resp, err = env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         code,
		FCMToken:    "device-token-2",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)

	var user models.User
	require.NoError(t, env.db.Where("phone_number = ?", phone).First(&user).Error)
	assert.Equal(t, "device-token-2", user.FCMToken)
}

func TestVerifyPhoneOtp_RejectsWrongAndExpiredCodes(t *testing.T) {
	env := newTestEnv(t)
	phone := "+77001234567"

	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))

	_, err := env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         "000000",
	}, "", "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)

	// Age the stored code past its window.
	require.NoError(t, env.db.Model(&models.Otp{}).
		Where("phone = ?", phone).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	code := issuedOtp(t, env, phone)
	_, err = env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         code,
	}, "", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestVerifyPhoneOtp_CodeIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	phone := "+77001234567"

	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))
	code := issuedOtp(t, env, phone)

	_, err := env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{PhoneNumber: phone, Otp: code}, "", "")
	require.NoError(t, err)

	_, err = env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{PhoneNumber: phone, Otp: code}, "", "")
	assert.Error(t, err)
}

func TestEmailOtp_AttachesVerifiedEmail(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	require.NoError(t, env.auth.SendEmailOtp(user.ID, &dto.SendEmailOtpRequest{Email: "me@example.com"}))
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, []string{"me@example.com"}, env.mailer.sent[0].To)

	// Another account cannot redeem the code.
	stranger := env.createUser(t, "+101", models.UserRoleCandidate)
	err := env.auth.VerifyEmailOtp(stranger.ID, &dto.VerifyEmailOtpRequest{
		Email: "me@example.com",
		Otp:   emailOtpCode,
	})
	assert.Error(t, err)

	require.NoError(t, env.auth.VerifyEmailOtp(user.ID, &dto.VerifyEmailOtpRequest{
		Email: "me@example.com",
		Otp:   emailOtpCode,
	}))

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "me@example.com", stored.Email)
}

func TestLogin_WithPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.Email = "me@example.com"
	})
	require.NoError(t, env.auth.SetPassword(user.ID, &dto.SetPasswordRequest{Password: "secret-pass-1"}))

	resp, err := env.auth.Login(&dto.LoginRequest{
		Email:    "me@example.com",
		Password: "secret-pass-1",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.False(t, resp.IsNewUser)
}

func TestLogin_UniformErrorForBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.Email = "me@example.com"
	})
	require.NoError(t, env.auth.SetPassword(user.ID, &dto.SetPasswordRequest{Password: "secret-pass-1"}))

	_, badPassword := env.auth.Login(&dto.LoginRequest{Email: "me@example.com", Password: "wrong"}, "", "")
	_, unknownEmail := env.auth.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"}, "", "")

	var appErr *apperrors.AppError
	require.ErrorAs(t, badPassword, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
	wrongPasswordMessage := appErr.Message

	require.ErrorAs(t, unknownEmail, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
	assert.Equal(t, wrongPasswordMessage, appErr.Message)
}

func TestRefreshTokens_RevokedSessionRejected(t *testing.T) {
	env := newTestEnv(t)
	phone := "+77001234567"

	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))
	resp, err := env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         issuedOtp(t, env, phone),
	}, "", "")
	require.NoError(t, err)

	tokens, err := env.auth.RefreshTokens(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	claims, err := auth.ParseRefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(claims.ID))

	_, err = env.auth.RefreshTokens(resp.RefreshToken)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
}

func TestRefreshTokens_RejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	phone := "+77001234567"

	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))
	resp, err := env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         issuedOtp(t, env, phone),
	}, "", "")
	require.NoError(t, err)

	_, err = env.auth.RefreshTokens(resp.AccessToken)
	assert.Error(t, err)
}

func TestPasswordReset_Flow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.Email = "me@example.com"
	})
	require.NoError(t, env.auth.SetPassword(user.ID, &dto.SetPasswordRequest{Password: "old-password1"}))

	// Sign in so there is a session to invalidate.
	resp, err := env.auth.Login(&dto.LoginRequest{Email: "me@example.com", Password: "old-password1"}, "", "")
	require.NoError(t, err)

	// Unknown addresses get the same silent success.
	require.NoError(t, env.auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "nobody@example.com"}))

	require.NoError(t, env.auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "me@example.com"}))
	require.Len(t, env.mailer.sent, 1)

	var session models.Session
	require.NoError(t, env.db.Where("user_id = ? AND purpose = ?", user.ID, "password_reset").
		First(&session).Error)
	require.NotEmpty(t, session.ResetToken)

	err = env.auth.ResetPassword(&dto.ResetPasswordRequest{Token: "bogus", NewPassword: "new-password1"})
	assert.Error(t, err)

	require.NoError(t, env.auth.ResetPassword(&dto.ResetPasswordRequest{
		Token:       session.ResetToken,
		NewPassword: "new-password1",
	}))

	_, err = env.auth.Login(&dto.LoginRequest{Email: "me@example.com", Password: "old-password1"}, "", "")
	assert.Error(t, err)
	_, err = env.auth.Login(&dto.LoginRequest{Email: "me@example.com", Password: "new-password1"}, "", "")
	assert.NoError(t, err)

	// The reset killed the earlier session.
	_, err = env.auth.RefreshTokens(resp.RefreshToken)
	assert.Error(t, err)
}

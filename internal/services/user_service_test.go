package services

import (
	"testing"

	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile_SetsRoleOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", "")

	resp, err := env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Role: strPtr(string(models.UserRoleCandidate)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.UserRoleCandidate), resp.Role)

	// Sending the same role again is a no-op, not an error.
	_, err = env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Role: strPtr(string(models.UserRoleCandidate)),
	})
	assert.NoError(t, err)

	_, err = env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Role: strPtr(string(models.UserRoleEmployer)),
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUpdateProfile_PartialUpdateKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.Name = "Arman"
		u.Description = "backend developer"
	})

	resp, err := env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Name: strPtr("Arman K."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Arman K.", resp.Name)
	assert.Equal(t, "backend developer", resp.Description)
	assert.Equal(t, "+100", resp.PhoneNumber)
}

func TestUpdateProfile_CandidateSkills(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	resp, err := env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Skills:  []string{"golang", "sql"},
		JobType: []string{"full_time"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "sql"}, resp.Skills)
	assert.Equal(t, []string{"full_time"}, resp.JobType)

	// The skill catalog learns new entries from profiles.
	var count int64
	require.NoError(t, env.db.Model(&models.Skill{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUserResponse_IsRoleGated(t *testing.T) {
	env := newTestEnv(t)
	employer := env.createUser(t, "+200", models.UserRoleEmployer, func(u *models.User) {
		u.CompanyName = "Acme"
		u.SetSkills([]string{"leftover"})
	})

	resp, err := env.users.GetUser(employer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.CompanyName)
	// Candidate-only fields never leak into the employer projection.
	assert.Nil(t, resp.Skills)
	// GetUser is the public view and carries no onboarding state.
	assert.Nil(t, resp.StepStatus)
}

func TestGetProfile_IncludesStepStatus(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate, func(u *models.User) {
		u.Email = "me@example.com"
		u.SetSkills([]string{"golang"})
	})

	resp, err := env.users.GetProfile(user.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.StepStatus)
	assert.True(t, resp.StepStatus.Step1)
	assert.True(t, resp.StepStatus.Step2)
	assert.False(t, resp.StepStatus.Step3)
}

func TestUpdateProfile_SkipStep3(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "+100", models.UserRoleCandidate)

	skip := true
	_, err := env.users.UpdateProfile(user.ID, &dto.UpdateProfileRequest{SkipStep3: &skip})
	require.NoError(t, err)

	status, err := env.users.GetStepStatus(user.ID)
	require.NoError(t, err)
	assert.True(t, status.Step3)
}

func TestDeleteAccount_RemovesUserAndSessions(t *testing.T) {
	env := newTestEnv(t)
	phone := "+77001234567"

	require.NoError(t, env.auth.SendPhoneOtp(&dto.SendOtpRequest{PhoneNumber: phone}))
	resp, err := env.auth.VerifyPhoneOtp(&dto.VerifyOtpRequest{
		PhoneNumber: phone,
		Otp:         issuedOtp(t, env, phone),
	}, "", "")
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(resp.User.ID))

	_, err = env.users.GetProfile(resp.User.ID)
	assert.Error(t, err)

	_, err = env.auth.RefreshTokens(resp.RefreshToken)
	assert.Error(t, err)
}

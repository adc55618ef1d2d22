package dto

import (
	"encoding/json"

	"jobvibes_backend/internal/models"
)

// StepStatus reflects onboarding progress. It is always derived from the
// profile on read, never stored.
type StepStatus struct {
	Step1 bool `json:"step_1"`
	Step2 bool `json:"step_2"`
	Step3 bool `json:"step_3"`
}

// UpdateProfileRequest is the partial profile update. The phone number is
// absent on purpose: it is fixed at signup.
type UpdateProfileRequest struct {
	UserName    *string `json:"user_name,omitempty" validate:"omitempty,min=2,max=50"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Role        *string `json:"role,omitempty" validate:"omitempty,is-user-role"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,is-gender"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`

	// Candidate fields
	Skills         []string               `json:"skills,omitempty"`
	Qualifications []models.Qualification `json:"qualifications,omitempty"`
	Experience     []models.Experience    `json:"experience,omitempty"`
	JobType        []string               `json:"job_type,omitempty" validate:"omitempty,dive,is-job-type"`

	// Employer fields
	CompanyName        *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	AboutCompany       *string `json:"about_company,omitempty" validate:"omitempty,max=5000"`
	CompanyAddress     *string `json:"company_address,omitempty" validate:"omitempty,max=500"`
	State              *string `json:"state,omitempty"`
	City               *string `json:"city,omitempty"`
	TeamSize           *int    `json:"team_size,omitempty" validate:"omitempty,min=0"`
	Position           *string `json:"position,omitempty"`
	RepresentativeRole *string `json:"representative_role,omitempty"`

	SkipStep3 *bool   `json:"skip_step_3,omitempty"`
	FCMToken  *string `json:"fcm_token,omitempty"`
}

// UserResponse is the role-gated profile projection: candidate fields appear
// only for candidates, employer fields only for employers.
type UserResponse struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	Name         string `json:"name,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Description  string `json:"description,omitempty"`

	// Candidate fields
	Skills         []string               `json:"skills,omitempty"`
	Qualifications []models.Qualification `json:"qualifications,omitempty"`
	Experience     []models.Experience    `json:"experience,omitempty"`
	JobType        []string               `json:"job_type,omitempty"`
	IntroVideoURL  string                 `json:"intro_video_url,omitempty"`
	ResumeURL      string                 `json:"resume_url,omitempty"`

	// Employer fields
	CompanyName        string `json:"company_name,omitempty"`
	AboutCompany       string `json:"about_company,omitempty"`
	CompanyAddress     string `json:"company_address,omitempty"`
	State              string `json:"state,omitempty"`
	City               string `json:"city,omitempty"`
	TeamSize           int    `json:"team_size,omitempty"`
	Position           string `json:"position,omitempty"`
	RepresentativeRole string `json:"representative_role,omitempty"`

	SkipStep3    bool        `json:"skip_step_3"`
	Status       string      `json:"status"`
	IsFeedPosted bool        `json:"is_feed_posted"`
	StepStatus   *StepStatus `json:"step_status,omitempty"`
}

// NewUserResponse projects a user row into its role variant.
func NewUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:           user.ID,
		UserName:     user.UserName,
		PhoneNumber:  user.PhoneNumber,
		Email:        user.Email,
		Role:         string(user.Role),
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
		Gender:       string(user.Gender),
		Description:  user.Description,
		SkipStep3:    user.SkipStep3,
		Status:       string(user.Status),
		IsFeedPosted: user.IsFeedPosted,
	}

	switch user.Role {
	case models.UserRoleCandidate:
		resp.Skills = user.GetSkills()
		resp.JobType = user.GetJobTypes()
		resp.IntroVideoURL = user.IntroVideoURL
		resp.ResumeURL = user.ResumeURL
		if len(user.Qualifications) > 0 {
			_ = json.Unmarshal(user.Qualifications, &resp.Qualifications)
		}
		if len(user.Experience) > 0 {
			_ = json.Unmarshal(user.Experience, &resp.Experience)
		}
	case models.UserRoleEmployer:
		resp.CompanyName = user.CompanyName
		resp.AboutCompany = user.AboutCompany
		resp.CompanyAddress = user.CompanyAddress
		resp.State = user.State
		resp.City = user.City
		resp.TeamSize = user.TeamSize
		resp.Position = user.Position
		resp.RepresentativeRole = user.RepresentativeRole
	}

	return resp
}

// AuthorSummary is the compact author block embedded in feed items and
// notifications.
type AuthorSummary struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
}

func NewAuthorSummary(user *models.User) *AuthorSummary {
	if user == nil {
		return nil
	}
	summary := &AuthorSummary{
		ID:           user.ID,
		UserName:     user.UserName,
		Name:         user.Name,
		Role:         string(user.Role),
		ProfileImage: user.ProfileImage,
	}
	if user.Role == models.UserRoleEmployer {
		summary.CompanyName = user.CompanyName
	}
	return summary
}

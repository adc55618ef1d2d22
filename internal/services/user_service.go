package services

import (
	"encoding/json"
	"errors"

	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/services/dto"
	"jobvibes_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	GetUser(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetStepStatus(userID string) (*dto.StepStatus, error)
	DeleteAccount(userID string) error
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	catalogRepo repositories.CatalogRepository
}

func NewUserService(userRepo repositories.UserRepository, catalogRepo repositories.CatalogRepository) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
	}
}

// GetProfile returns the caller's own profile with onboarding progress.
func (s *UserServiceImpl) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	steps := ComputeStepStatus(user)
	resp.StepStatus = &steps
	return resp, nil
}

// GetUser returns another user's public profile. No step status: onboarding
// progress is the owner's business.
func (s *UserServiceImpl) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile applies a partial update. The phone number is immutable and
// the role can be set once but never changed.
func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Role != nil && user.Role != "" && *req.Role != string(user.Role) {
		return nil, apperrors.NewBadRequestError("Role cannot be changed once set")
	}

	fields := map[string]interface{}{}
	if req.UserName != nil {
		fields["user_name"] = *req.UserName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil && user.Role == "" {
		fields["role"] = models.UserRole(*req.Role)
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Gender != nil {
		fields["gender"] = models.Gender(*req.Gender)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	// Candidate fields
	if req.Skills != nil {
		data, _ := json.Marshal(req.Skills)
		fields["skills"] = data
	}
	if req.Qualifications != nil {
		data, _ := json.Marshal(req.Qualifications)
		fields["qualifications"] = data
	}
	if req.Experience != nil {
		data, _ := json.Marshal(req.Experience)
		fields["experience"] = data
	}
	if req.JobType != nil {
		data, _ := json.Marshal(req.JobType)
		fields["job_type"] = data
	}

	// Employer fields
	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.AboutCompany != nil {
		fields["about_company"] = *req.AboutCompany
	}
	if req.CompanyAddress != nil {
		fields["company_address"] = *req.CompanyAddress
	}
	if req.State != nil {
		fields["state"] = *req.State
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.TeamSize != nil {
		fields["team_size"] = *req.TeamSize
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.RepresentativeRole != nil {
		fields["representative_role"] = *req.RepresentativeRole
	}

	if req.SkipStep3 != nil {
		fields["skip_step_3"] = *req.SkipStep3
	}
	if req.FCMToken != nil {
		fields["fcm_token"] = *req.FCMToken
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	// New candidate skills feed the shared catalog for later suggestions.
	if req.Skills != nil {
		if err := s.catalogRepo.SyncSkills(req.Skills); err != nil {
			logger.WithError(err).Warn("failed to sync skills into catalog", "user_id", userID)
		}
	}

	updated, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(updated)
	steps := ComputeStepStatus(updated)
	resp.StepStatus = &steps
	return resp, nil
}

func (s *UserServiceImpl) GetStepStatus(userID string) (*dto.StepStatus, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	steps := ComputeStepStatus(user)
	return &steps, nil
}

func (s *UserServiceImpl) DeleteAccount(userID string) error {
	if err := s.userRepo.RevokeUserSessions(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

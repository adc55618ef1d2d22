package services

import (
	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"
)

// ComputeStepStatus derives onboarding progress from the profile itself.
// Nothing is stored: editing the profile moves the steps accordingly.
//
// Step 1 is complete once both email and role are set. Step 2 depends on the
// role: candidates need at least one skill, employers need the company block
// filled in. Step 3 is complete once the user has posted to the feed or
// explicitly skipped.
func ComputeStepStatus(user *models.User) dto.StepStatus {
	if user == nil {
		return dto.StepStatus{}
	}

	status := dto.StepStatus{
		Step1: user.Email != "" && user.Role != "",
	}

	switch user.Role {
	case models.UserRoleCandidate:
		status.Step2 = len(user.GetSkills()) > 0
	case models.UserRoleEmployer:
		status.Step2 = user.CompanyName != "" && user.AboutCompany != "" && user.CompanyAddress != ""
	}

	status.Step3 = user.IsFeedPosted || user.SkipStep3
	return status
}

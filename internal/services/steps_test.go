package services

import (
	"testing"

	"jobvibes_backend/internal/models"
	"jobvibes_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

func TestComputeStepStatus(t *testing.T) {
	candidateWithSkills := func(u *models.User) { u.SetSkills([]string{"golang"}) }

	tests := []struct {
		name string
		user *models.User
		want dto.StepStatus
	}{
		{
			name: "nil user",
			user: nil,
			want: dto.StepStatus{},
		},
		{
			name: "fresh signup",
			user: &models.User{},
			want: dto.StepStatus{},
		},
		{
			name: "email without role",
			user: &models.User{Email: "a@b.com"},
			want: dto.StepStatus{},
		},
		{
			name: "role without email",
			user: &models.User{Role: models.UserRoleCandidate},
			want: dto.StepStatus{},
		},
		{
			name: "step1 complete",
			user: &models.User{Email: "a@b.com", Role: models.UserRoleCandidate},
			want: dto.StepStatus{Step1: true},
		},
		{
			name: "candidate with skills",
			user: func() *models.User {
				u := &models.User{Email: "a@b.com", Role: models.UserRoleCandidate}
				candidateWithSkills(u)
				return u
			}(),
			want: dto.StepStatus{Step1: true, Step2: true},
		},
		{
			name: "candidate skills without email still counts for step2",
			user: func() *models.User {
				u := &models.User{Role: models.UserRoleCandidate}
				candidateWithSkills(u)
				return u
			}(),
			want: dto.StepStatus{Step2: true},
		},
		{
			name: "employer with partial company block",
			user: &models.User{
				Email:       "a@b.com",
				Role:        models.UserRoleEmployer,
				CompanyName: "Acme",
			},
			want: dto.StepStatus{Step1: true},
		},
		{
			name: "employer with full company block",
			user: &models.User{
				Email:          "a@b.com",
				Role:           models.UserRoleEmployer,
				CompanyName:    "Acme",
				AboutCompany:   "We make anvils",
				CompanyAddress: "1 Desert Rd",
			},
			want: dto.StepStatus{Step1: true, Step2: true},
		},
		{
			name: "skills on employer do not satisfy step2",
			user: func() *models.User {
				u := &models.User{Email: "a@b.com", Role: models.UserRoleEmployer}
				candidateWithSkills(u)
				return u
			}(),
			want: dto.StepStatus{Step1: true},
		},
		{
			name: "posted to feed",
			user: &models.User{IsFeedPosted: true},
			want: dto.StepStatus{Step3: true},
		},
		{
			name: "skipped step3",
			user: &models.User{SkipStep3: true},
			want: dto.StepStatus{Step3: true},
		},
		{
			name: "all steps complete",
			user: func() *models.User {
				u := &models.User{
					Email:        "a@b.com",
					Role:         models.UserRoleCandidate,
					IsFeedPosted: true,
				}
				candidateWithSkills(u)
				return u
			}(),
			want: dto.StepStatus{Step1: true, Step2: true, Step3: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStepStatus(tt.user))
		})
	}
}

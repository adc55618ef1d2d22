package models

type UserRole string
type UserStatus string
type Gender string
type FeedStatus string
type JobType string
type DispatchStatus string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleEmployer  UserRole = "employer"

	// A user becomes active once intro media is present.
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"

	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"

	// Moderation tag set at creation; no in-scope operation addresses it
	// afterwards.
	FeedStatusPending  FeedStatus = "pending"
	FeedStatusApproved FeedStatus = "approved"
	FeedStatusRejected FeedStatus = "rejected"

	JobTypeFreelance JobType = "freelance"
	JobTypeFullTime  JobType = "full_time"
	JobTypePartTime  JobType = "part_time"

	DispatchStatusSuccess DispatchStatus = "success"
	DispatchStatusFailed  DispatchStatus = "failed"
)

package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// User carries one identity with two role-specific attribute sets.
// Role is set exactly once; the phone number never changes after creation.
type User struct {
	BaseModel
	UserName    string   `gorm:"not null" json:"user_name"`
	PhoneNumber string   `gorm:"uniqueIndex;not null" json:"phone_number"`
	Email       string   `json:"email"`
	Password    string   `json:"-"`
	Role        UserRole `gorm:"type:varchar(20)" json:"role"`

	// Common fields
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	Gender       Gender `gorm:"type:varchar(20)" json:"gender"`
	Description  string `json:"description"`

	// Candidate fields
	Skills         datatypes.JSON `gorm:"type:jsonb" json:"skills"`         // ["golang", "sql"]
	Qualifications datatypes.JSON `gorm:"type:jsonb" json:"qualifications"` // []Qualification
	Experience     datatypes.JSON `gorm:"type:jsonb" json:"experience"`     // []Experience
	JobType        datatypes.JSON `gorm:"type:jsonb" json:"job_type"`       // ["full_time"]
	IntroVideoURL  string         `json:"intro_video_url"`
	ResumeURL      string         `json:"resume_url"`

	// Employer fields
	CompanyName        string `json:"company_name"`
	AboutCompany       string `json:"about_company"`
	CompanyAddress     string `json:"company_address"`
	State              string `json:"state"`
	City               string `json:"city"`
	TeamSize           int    `json:"team_size"`
	Position           string `json:"position"`
	RepresentativeRole string `json:"representative_role"`

	SkipStep3    bool       `gorm:"default:false" json:"skip_step_3"`
	FCMToken     string     `json:"-"`
	Status       UserStatus `gorm:"type:varchar(20);default:'inactive'" json:"status"`
	IsFeedPosted bool       `gorm:"default:false" json:"is_feed_posted"`
}

// Qualification is one education record in the candidate's bag.
type Qualification struct {
	SchoolUniversityName string  `json:"school_university_name"`
	BoardUniversity      string  `json:"board_university,omitempty"`
	CourseName           string  `json:"course_name,omitempty"`
	PercentageGrade      float64 `json:"percentage_grade,omitempty"`
	Year                 int     `json:"year,omitempty"`
}

// Experience is one employment record in the candidate's bag.
type Experience struct {
	CompanyName string     `json:"company_name"`
	Duration    string     `json:"duration,omitempty"`
	CTC         string     `json:"ctc,omitempty"`
	Role        string     `json:"role,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (u *User) GetSkills() []string {
	var skills []string
	if len(u.Skills) > 0 {
		_ = json.Unmarshal(u.Skills, &skills)
	}
	return skills
}

func (u *User) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	u.Skills = datatypes.JSON(data)
}

func (u *User) GetJobTypes() []string {
	var jobTypes []string
	if len(u.JobType) > 0 {
		_ = json.Unmarshal(u.JobType, &jobTypes)
	}
	return jobTypes
}

func (u *User) SetJobTypes(jobTypes []string) {
	data, _ := json.Marshal(jobTypes)
	u.JobType = datatypes.JSON(data)
}

// Session is one authenticated device/agent. Refresh tokens reference a
// session, so revoking the session kills the token chain.
type Session struct {
	BaseModel
	UserID    string `gorm:"not null;index"`
	UserAgent string `gorm:"default:''"`
	IP        string `gorm:"default:''"`
	Revoked   bool   `gorm:"default:false"`
	RevokedAt *time.Time

	// Password-reset flow piggybacks on sessions instead of its own table.
	ResetToken string
	Purpose    string
	ExpiresAt  *time.Time
}

// Otp is a pending one-time code, either the phone token flow or the
// email verification flow.
type Otp struct {
	BaseModel
	Phone     string `gorm:"index"`
	Email     string
	Code      string
	UserID    string    `gorm:"index"`
	ExpiresAt time.Time `gorm:"not null"`
}

// FirebaseCredential holds the FCM service-account key, stored in the
// database so the push client can be initialized without a key file on disk.
type FirebaseCredential struct {
	BaseModel
	Data datatypes.JSON `gorm:"type:jsonb;not null"`
}

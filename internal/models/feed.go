package models

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Feed is one post. AuthorRole is a snapshot of the author's role at
// creation time and never changes afterwards, even if the profile would.
type Feed struct {
	BaseModel
	AuthorID   string     `gorm:"not null;index" json:"author_id"`
	AuthorRole UserRole   `gorm:"type:varchar(20);not null" json:"author_role"`
	Status     FeedStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// At least one of content or media must be present.
	Content string         `json:"content"`
	Media   datatypes.JSON `gorm:"type:jsonb" json:"media"` // ["url", ...]

	// Targeting attributes
	JobTitle          datatypes.JSON `gorm:"type:jsonb" json:"job_title"`
	WorkPlaceName     datatypes.JSON `gorm:"type:jsonb" json:"work_place_name"`
	JobType           datatypes.JSON `gorm:"type:jsonb" json:"job_type"`
	States            datatypes.JSON `gorm:"type:jsonb" json:"states"`
	Cities            datatypes.JSON `gorm:"type:jsonb" json:"cities"`
	NoticePeriod      *int           `json:"notice_period"` // days, >= 0 when present
	IsImmediateJoiner bool           `gorm:"default:false" json:"is_immediate_joiner"`

	// Counters are mutated only by the ledger repository.
	NoOfReactions    int `gorm:"default:0" json:"noOfReactions"`
	NoOfApplications int `gorm:"default:0" json:"noOfApplications"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

var ErrFeedContentRequired = errors.New("either content or media is required")

// BeforeSave enforces the content-or-media invariant at the model layer as
// well; the service rejects such requests earlier with a 400.
func (f *Feed) BeforeSave(tx *gorm.DB) error {
	if f.Content == "" && len(f.GetMedia()) == 0 {
		return ErrFeedContentRequired
	}
	return nil
}

func (f *Feed) GetMedia() []string {
	return decodeStringArray(f.Media)
}

func (f *Feed) SetMedia(media []string) {
	f.Media = encodeStringArray(media)
}

func (f *Feed) GetJobTitles() []string {
	return decodeStringArray(f.JobTitle)
}

func decodeStringArray(raw datatypes.JSON) []string {
	var values []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &values)
	}
	return values
}

func encodeStringArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

// StringArray is the helper handlers/services use when writing targeting
// fields into a Feed.
func StringArray(values []string) datatypes.JSON {
	return encodeStringArray(values)
}

// Reaction is the at-most-one-per-(viewer, feed) rating record. The unique
// index is the ledger's correctness guarantee under concurrent first-time
// reactions from the same viewer.
type Reaction struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex:idx_reaction_user_feed" json:"user_id"`
	FeedID      string `gorm:"not null;uniqueIndex:idx_reaction_user_feed;index" json:"feed_id"`
	RatingValue int    `gorm:"not null" json:"ratingValue"` // 1..5

	Feed *Feed `gorm:"foreignKey:FeedID" json:"-"`
}

// Application records an application submission. Unlike reactions there is
// deliberately no uniqueness constraint: repeated applies create repeated
// rows and re-increment the counter (observed platform behavior).
type Application struct {
	BaseModel
	UserID    string `gorm:"not null;index" json:"user_id"`
	FeedID    string `gorm:"not null;index" json:"feed_id"`
	IsApplied bool   `gorm:"default:false" json:"is_applied"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

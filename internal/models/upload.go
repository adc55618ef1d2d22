package models

// File is the metadata record behind one stored upload.
type File struct {
	BaseModel
	UserID       string `gorm:"index" json:"user_id,omitempty"`
	Filename     string `gorm:"not null" json:"filename"`
	OriginalName string `gorm:"not null" json:"original_name"`
	Path         string `gorm:"not null" json:"path"`
	Size         int64  `gorm:"not null" json:"size"`
	URL          string `gorm:"not null" json:"url"`
	ContentType  string `json:"content_type"`
	Type         string `gorm:"index" json:"type"` // e.g. "resume", "upload"
}

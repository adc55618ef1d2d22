package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// NotificationLog is the append-only audit record of one delivery attempt.
// Written by the dispatcher only; read by the inbox listing.
type NotificationLog struct {
	BaseModel
	Title      string         `gorm:"not null" json:"title"`
	Body       string         `gorm:"not null" json:"body"`
	PostedBy   string         `gorm:"index" json:"posted_by"`
	ReceiverID string         `json:"receiver_id,omitempty"`
	Token      string         `json:"token,omitempty"`
	Data       datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	SentAt     time.Time      `json:"sent_at"`
	Status     DispatchStatus `gorm:"type:varchar(20);default:'success'" json:"status"`
	Error      string         `json:"error,omitempty"`

	Poster *User `gorm:"foreignKey:PostedBy" json:"-"`
}

func (n *NotificationLog) GetData() map[string]string {
	var data map[string]string
	if len(n.Data) > 0 {
		_ = json.Unmarshal(n.Data, &data)
	}
	return data
}

func (n *NotificationLog) SetData(data map[string]string) {
	raw, _ := json.Marshal(data)
	n.Data = datatypes.JSON(raw)
}

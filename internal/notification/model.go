package notification

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const ChannelEmail = "email"

// NotificationLog records each broadcast delivery attempt. Purely operational:
// the fan-out itself never reads these rows back.
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Channel    string         `gorm:"size:20;not null" json:"channel"`
	Kind       string         `gorm:"size:30;not null" json:"kind"`
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
}

func toJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

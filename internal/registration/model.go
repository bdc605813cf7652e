package registration

import (
	"time"
)

// ============================
// 🔷 GORM Registration Model — a user's enrollment in an event. The composite
// unique index is the storage-level guard against racing duplicate submissions.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"user_id"`
	RefCode   string    `gorm:"type:varchar(36);uniqueIndex" json:"ref_code"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`

	Responses []RegistrationFieldResponse `gorm:"constraint:OnDelete:CASCADE" json:"responses,omitempty"`
}

// ============================
// 🔷 GORM RegistrationFieldResponse Model — one answered field
type RegistrationFieldResponse struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	RegistrationID uint   `gorm:"not null;index" json:"registration_id"`
	FieldID        uint   `gorm:"not null;index" json:"field_id"`
	ResponseValue  string `gorm:"type:text;not null" json:"response_value"`
}

// ============================
// 🟡 Register Request
type RegisterRequest struct {
	Responses []SubmittedResponse `json:"responses"`
}

// SubmittedResponse is one (field reference, value) pair from the client
type SubmittedResponse struct {
	FieldID       uint   `json:"field_id"`
	ResponseValue string `json:"response_value"`
}

// ParticipantRow is one roster entry with custom-field answers
type ParticipantRow struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	RefCode      string        `json:"ref_code"`
	RegisteredAt time.Time     `json:"registered_at"`
	Fields       []FieldAnswer `json:"fields"`
}

type FieldAnswer struct {
	FieldName     string `json:"field_name"`
	ResponseValue string `json:"response_value"`
}

// RegistrationSummary is the self-listing shape for a user's registrations
type RegistrationSummary struct {
	EventID    uint      `json:"event_id"`
	EventTitle string    `json:"event_title"`
	EventDate  time.Time `json:"event_date"`
	RefCode    string    `json:"ref_code"`
}

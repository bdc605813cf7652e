package event

import (
	"time"
)

// Event modes and participation types. Venue is required for offline events,
// team size (>= 2) for team events.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"

	ParticipationIndividual = "individual"
	ParticipationTeam       = "team"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	PosterURL   string    `gorm:"type:varchar(255)" json:"poster_url,omitempty"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Prizes      string    `gorm:"type:varchar(255)" json:"prizes,omitempty"`
	Eligibility string    `gorm:"type:varchar(255)" json:"eligibility,omitempty"`
	Category    string    `gorm:"type:varchar(100)" json:"category,omitempty"`

	Mode              string `gorm:"type:varchar(20);not null;default:'online'" json:"mode"`
	Venue             string `gorm:"type:varchar(255)" json:"venue,omitempty"`
	ParticipationType string `gorm:"type:varchar(20);not null;default:'individual'" json:"participation_type"`
	TeamSize          *int   `json:"team_size,omitempty"`

	OrganiserID uint      `gorm:"not null;index" json:"organiser_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Fields []RegistrationField `gorm:"constraint:OnDelete:CASCADE" json:"fields,omitempty"`

	RegistrationCount int    `gorm:"-" json:"registration_count"`
	OrganiserName     string `gorm:"-" json:"organiser_name,omitempty"`
}

// ============================
// 🔷 GORM RegistrationField Model — one organiser-defined question on the
// event's registration form. FieldType is descriptive metadata for client-side
// rendering, not validated server-side.
type RegistrationField struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	EventID    uint   `gorm:"not null;index" json:"event_id"`
	FieldName  string `gorm:"type:varchar(100);not null" json:"field_name"`
	FieldType  string `gorm:"type:varchar(50);not null" json:"field_type"`
	IsRequired bool   `gorm:"default:false" json:"is_required"`
}

// ============================
// 🟡 Field definition as submitted on event creation
type FieldDefinition struct {
	FieldName  string `json:"field_name"`
	FieldType  string `json:"field_type"`
	IsRequired bool   `json:"is_required"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PosterURL   string `json:"poster_url"`
	Date        string `json:"date"`     // ISO 8601
	Deadline    string `json:"deadline"` // ISO 8601
	Prizes      string `json:"prizes"`
	Eligibility string `json:"eligibility"`
	Category    string `json:"category"`

	Mode              string `json:"mode"`
	Venue             string `json:"venue"`
	ParticipationType string `json:"participation_type"`
	TeamSize          *int   `json:"team_size"`

	Fields []FieldDefinition `json:"fields"`
}

// ============================
// 🟠 Update Event Request — all fields optional; only supplied keys change
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PosterURL   *string `json:"poster_url"`
	Date        *string `json:"date"`
	Deadline    *string `json:"deadline"`
	Prizes      *string `json:"prizes"`
	Eligibility *string `json:"eligibility"`
	Category    *string `json:"category"`

	Mode              *string `json:"mode"`
	Venue             *string `json:"venue"`
	ParticipationType *string `json:"participation_type"`
	TeamSize          *int    `json:"team_size"`
}

// EventSummary is the list-view shape with organiser name and registration count
type EventSummary struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Date              time.Time `json:"date"`
	OrganiserName     string    `json:"organiser_name"`
	RegistrationCount int       `json:"registration_count"`
}

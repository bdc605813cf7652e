package registration

import (
	"gorm.io/gorm"

	"github.com/eventsynk/eventsynk-backend/internal/notification"
)

type Repository interface {
	Create(reg *Registration) error
	CreateResponses(responses []RegistrationFieldResponse) error
	FindByEventAndUser(eventID, userID uint) (*Registration, error)
	Delete(reg *Registration) error
	CountResponses(registrationID uint) (int, error)
	GetParticipants(eventID uint) ([]ParticipantRow, error)
	ListByUser(userID uint) ([]RegistrationSummary, error)
	ResolveParticipants(eventID uint) ([]notification.Participant, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(reg *Registration) error {
	return r.db.Create(reg).Error
}

// CreateResponses persists the accepted subset in its own unit of work, after
// the registration row is already committed.
func (r *repository) CreateResponses(responses []RegistrationFieldResponse) error {
	if len(responses) == 0 {
		return nil
	}
	return r.db.Create(&responses).Error
}

func (r *repository) FindByEventAndUser(eventID, userID uint) (*Registration, error) {
	var reg Registration
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Delete removes the registration and its responses
func (r *repository) Delete(reg *Registration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("registration_id = ?", reg.ID).Delete(&RegistrationFieldResponse{}).Error; err != nil {
			return err
		}
		return tx.Delete(reg).Error
	})
}

func (r *repository) CountResponses(registrationID uint) (int, error) {
	var count int64
	err := r.db.Model(&RegistrationFieldResponse{}).
		Where("registration_id = ?", registrationID).
		Count(&count).Error
	return int(count), err
}

// GetParticipants builds the organiser roster with per-participant answers
func (r *repository) GetParticipants(eventID uint) ([]ParticipantRow, error) {
	var regs []Registration
	err := r.db.Where("event_id = ?", eventID).Order("timestamp ASC").Find(&regs).Error
	if err != nil {
		return nil, err
	}

	participants := make([]ParticipantRow, 0, len(regs))
	for _, reg := range regs {
		var user struct {
			Name  string
			Email string
		}
		if err := r.db.Table("users").Select("name, email").Where("id = ?", reg.UserID).Scan(&user).Error; err != nil {
			return nil, err
		}

		var answers []FieldAnswer
		err := r.db.Table("registration_field_responses").
			Select("registration_fields.field_name, registration_field_responses.response_value").
			Joins("JOIN registration_fields ON registration_fields.id = registration_field_responses.field_id").
			Where("registration_field_responses.registration_id = ?", reg.ID).
			Order("registration_fields.id ASC").
			Scan(&answers).Error
		if err != nil {
			return nil, err
		}

		participants = append(participants, ParticipantRow{
			Name:         user.Name,
			Email:        user.Email,
			RefCode:      reg.RefCode,
			RegisteredAt: reg.Timestamp,
			Fields:       answers,
		})
	}

	return participants, nil
}

// ListByUser returns the events a user has registered for
func (r *repository) ListByUser(userID uint) ([]RegistrationSummary, error) {
	var rows []RegistrationSummary
	err := r.db.Table("registrations").
		Select("registrations.event_id, events.title AS event_title, events.date AS event_date, registrations.ref_code").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.user_id = ?", userID).
		Order("events.date ASC").
		Scan(&rows).Error
	return rows, err
}

// ResolveParticipants maps an event's registrations to notifiable users.
// This is the participant source behind the notification hub.
func (r *repository) ResolveParticipants(eventID uint) ([]notification.Participant, error) {
	var participants []notification.Participant
	err := r.db.Table("registrations").
		Select("users.name, users.email").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.event_id = ?", eventID).
		Order("registrations.timestamp ASC").
		Scan(&participants).Error
	return participants, err
}

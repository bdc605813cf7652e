package event

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event with its registration-field definitions
func (r *Repository) CreateEvent(e *Event, fields []RegistrationField) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		for i := range fields {
			fields[i].EventID = e.ID
			if err := tx.Create(&fields[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ===========================
// 🔍 Get Event By ID with field definitions (in creation order) and count
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("registration_fields.id ASC")
	}).First(&e, id).Error
	if err != nil {
		return nil, err
	}

	count, err := r.CountRegistrations(id)
	if err != nil {
		return nil, err
	}
	e.RegistrationCount = count

	return &e, nil
}

// ===========================
// 📄 List all events with organiser name and registration count
func (r *Repository) ListEvents() ([]EventSummary, error) {
	var rows []EventSummary
	err := r.DB.Table("events").
		Select(`events.id, events.title, events.date, users.name AS organiser_name,
			(SELECT COUNT(*) FROM registrations WHERE registrations.event_id = events.id) AS registration_count`).
		Joins("LEFT JOIN users ON users.id = events.organiser_id").
		Order("events.date ASC").
		Scan(&rows).Error
	return rows, err
}

// ===========================
// 📄 List events created by an organiser
func (r *Repository) ListByOrganiser(organiserID uint) ([]EventSummary, error) {
	var rows []EventSummary
	err := r.DB.Table("events").
		Select(`events.id, events.title, events.date, users.name AS organiser_name,
			(SELECT COUNT(*) FROM registrations WHERE registrations.event_id = events.id) AS registration_count`).
		Joins("LEFT JOIN users ON users.id = events.organiser_id").
		Where("events.organiser_id = ?", organiserID).
		Order("events.date ASC").
		Scan(&rows).Error
	return rows, err
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event — cascades to fields, registrations and responses
func (r *Repository) DeleteEvent(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM registration_field_responses
			WHERE registration_id IN (SELECT id FROM registrations WHERE event_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&RegistrationField{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM registrations WHERE event_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

// ===========================
// 🔢 Count registrations for an event
func (r *Repository) CountRegistrations(eventID uint) (int, error) {
	var count int64
	err := r.DB.Table("registrations").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 🔍 Get a single field definition scoped to its event
func (r *Repository) GetFieldsByEvent(eventID uint) ([]RegistrationField, error) {
	var fields []RegistrationField
	err := r.DB.Where("event_id = ?", eventID).Order("id ASC").Find(&fields).Error
	return fields, err
}

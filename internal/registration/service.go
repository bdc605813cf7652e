package registration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventsynk/eventsynk-backend/internal/auditlog"
	"github.com/eventsynk/eventsynk-backend/internal/event"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("registration not found")
	ErrNotOrganiser      = errors.New("only the organiser can view participants")
)

// EventSource looks up events with their field definitions.
// Satisfied by the event repository.
type EventSource interface {
	GetEventByID(id uint) (*event.Event, error)
}

type Service struct {
	Repo      Repository
	EventRepo EventSource
	AuditSvc  auditlog.Service
}

func NewService(repo Repository, eventRepo EventSource, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:      repo,
		EventRepo: eventRepo,
		AuditSvc:  auditSvc,
	}
}

// ===========================
// 🎯 Register a user for an event
//
// The registration row is committed first; the accepted field responses go in
// a second unit of work. A failure partway leaves the registration present
// with a subset of responses, matching the silent-drop policy.
func (s *Service) Register(eventID, userID uint, req *RegisterRequest, ip string) (*Registration, error) {
	e, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if _, err := s.Repo.FindByEventAndUser(eventID, userID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reg := &Registration{
		EventID: eventID,
		UserID:  userID,
		RefCode: uuid.NewString(),
	}
	if err := s.Repo.Create(reg); err != nil {
		s.audit(userID, &eventID, "EVENT_REGISTERED", map[string]interface{}{
			"event_id": eventID,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	accepted := FilterResponses(e.Fields, req.Responses)
	for i := range accepted {
		accepted[i].RegistrationID = reg.ID
	}
	if err := s.Repo.CreateResponses(accepted); err != nil {
		// Registration already committed; the partial state stands
		s.audit(userID, &eventID, "EVENT_REGISTERED", map[string]interface{}{
			"event_id": eventID,
			"ref_code": reg.RefCode,
			"error":    "responses partially persisted: " + err.Error(),
		}, ip, "failure")
		return reg, nil
	}

	s.audit(userID, &eventID, "EVENT_REGISTERED", map[string]interface{}{
		"event_id":  eventID,
		"ref_code":  reg.RefCode,
		"responses": len(accepted),
	}, ip, "success")

	return reg, nil
}

// ===========================
// ❌ Cancel a registration
func (s *Service) Cancel(eventID, userID uint, ip string) error {
	reg, err := s.Repo.FindByEventAndUser(eventID, userID)
	if err != nil {
		return ErrNotRegistered
	}

	if err := s.Repo.Delete(reg); err != nil {
		s.audit(userID, &eventID, "REGISTRATION_CANCELLED", map[string]interface{}{
			"event_id": eventID,
			"error":    err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(userID, &eventID, "REGISTRATION_CANCELLED", map[string]interface{}{
		"event_id": eventID,
		"ref_code": reg.RefCode,
	}, ip, "success")

	return nil
}

// ===========================
// 📋 Roster — organiser-only
func (s *Service) GetParticipants(eventID, userID uint) ([]ParticipantRow, error) {
	e, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if e.OrganiserID != userID {
		return nil, ErrNotOrganiser
	}
	return s.Repo.GetParticipants(eventID)
}

// ===========================
// 📄 Self listing of a user's registrations
func (s *Service) ListByUser(userID uint) ([]RegistrationSummary, error) {
	return s.Repo.ListByUser(userID)
}

func (s *Service) audit(userID uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	uid := userID
	_ = s.AuditSvc.LogAction(context.Background(), &uid, eventID, action, details, ip, status)
}

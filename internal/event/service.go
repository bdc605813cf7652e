package event

import (
	"context"
	"errors"
	"time"

	"github.com/eventsynk/eventsynk-backend/internal/auditlog"
	"github.com/eventsynk/eventsynk-backend/internal/notification"
)

var (
	ErrNotFound  = errors.New("event not found")
	ErrForbidden = errors.New("only the organiser may modify this event")
)

// Service wraps business logic for platform events
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	Hub      *notification.Hub
}

func NewService(r *Repository, auditSvc auditlog.Service, hub *notification.Hub) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		Hub:      hub,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, organiserID uint, ip string) (*Event, error) {
	if req.Title == "" || req.Description == "" || req.Date == "" || req.Deadline == "" {
		return nil, errors.New("missing required fields")
	}

	date, deadline, err := ParseSchedule(req.Date, req.Deadline)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchedule(date, deadline, time.Now()); err != nil {
		return nil, err
	}

	mode, venue, participation, teamSize, err := NormalizeFormat(req.Mode, req.Venue, req.ParticipationType, req.TeamSize)
	if err != nil {
		return nil, err
	}

	e := &Event{
		Title:             req.Title,
		Description:       req.Description,
		PosterURL:         req.PosterURL,
		Date:              date,
		Deadline:          deadline,
		Prizes:            req.Prizes,
		Eligibility:       req.Eligibility,
		Category:          req.Category,
		Mode:              mode,
		Venue:             venue,
		ParticipationType: participation,
		TeamSize:          teamSize,
		OrganiserID:       organiserID,
	}

	// Field definitions missing a name or type are skipped, not rejected
	var fields []RegistrationField
	for _, f := range req.Fields {
		if f.FieldName == "" || f.FieldType == "" {
			continue
		}
		fields = append(fields, RegistrationField{
			FieldName:  f.FieldName,
			FieldType:  f.FieldType,
			IsRequired: f.IsRequired,
		})
	}

	if err := s.Repo.CreateEvent(e, fields); err != nil {
		s.audit(organiserID, nil, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(organiserID, &e.ID, "EVENT_CREATED", map[string]interface{}{
		"event_id": e.ID,
		"title":    e.Title,
		"date":     e.Date.Format(time.RFC3339),
		"fields":   len(fields),
	}, ip, "success")

	return e, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEvent(id uint) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// ===========================
// 📄 List all events
func (s *Service) ListEvents() ([]EventSummary, error) {
	return s.Repo.ListEvents()
}

// ===========================
// 📄 List events created by a user
func (s *Service) ListByOrganiser(organiserID uint) ([]EventSummary, error) {
	return s.Repo.ListByOrganiser(organiserID)
}

// ===========================
// 🛠 Update Event — organiser-only; broadcasts which fields changed
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, userID uint, organiserName, ip string) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if e.OrganiserID != userID {
		s.audit(userID, &id, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    "not the organiser",
		}, ip, "failure")
		return nil, ErrForbidden
	}

	changed, err := ApplyUpdate(e, req)
	if err != nil {
		return nil, err
	}

	if req.Date != nil || req.Deadline != nil {
		if err := ValidateSchedule(e.Date, e.Deadline, time.Now()); err != nil {
			return nil, err
		}
	}
	mode, venue, participation, teamSize, err := NormalizeFormat(e.Mode, e.Venue, e.ParticipationType, e.TeamSize)
	if err != nil {
		return nil, err
	}
	e.Mode, e.Venue, e.ParticipationType, e.TeamSize = mode, venue, participation, teamSize

	if err := s.Repo.UpdateEvent(e); err != nil {
		s.audit(userID, &id, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(userID, &id, "EVENT_UPDATED", map[string]interface{}{
		"event_id":       id,
		"title":          e.Title,
		"updated_fields": changed,
	}, ip, "success")

	// Fan out to registered participants. Delivery failures are absorbed and
	// never surface to the organiser's request.
	if s.Hub != nil && len(changed) > 0 {
		s.Hub.Broadcast(notification.ChangeUpdated, notification.ChangeDetails{
			EventTitle:    e.Title,
			UpdatedFields: changed,
			OrganiserName: organiserName,
		}, e.ID)
	}

	return e, nil
}

// ===========================
// ❌ Delete Event — organiser-only; cancellation notice fans out before the
// cascade removes the registrations the broadcast needs.
func (s *Service) DeleteEvent(id uint, userID uint, organiserName, ip string) error {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return ErrNotFound
	}

	if e.OrganiserID != userID {
		s.audit(userID, &id, "EVENT_DELETED", map[string]interface{}{
			"event_id": id,
			"error":    "not the organiser",
		}, ip, "failure")
		return ErrForbidden
	}

	if s.Hub != nil {
		s.Hub.Broadcast(notification.ChangeCancelled, notification.ChangeDetails{
			EventTitle:    e.Title,
			OrganiserName: organiserName,
		}, e.ID)
	}

	if err := s.Repo.DeleteEvent(id); err != nil {
		s.audit(userID, &id, "EVENT_DELETED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(userID, &id, "EVENT_DELETED", map[string]interface{}{
		"event_id": id,
		"title":    e.Title,
	}, ip, "success")

	return nil
}

func (s *Service) audit(userID uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	uid := userID
	_ = s.AuditSvc.LogAction(context.Background(), &uid, eventID, action, details, ip, status)
}

// ===========================
// Validation helpers

// ParseSchedule parses the ISO-8601 date and deadline strings.
func ParseSchedule(dateStr, deadlineStr string) (time.Time, time.Time, error) {
	date, err := parseISO(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid date format, use ISO format")
	}
	deadline, err := parseISO(deadlineStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid deadline format, use ISO format")
	}
	return date, deadline, nil
}

func parseISO(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// ValidateSchedule enforces the event time invariant: the registration deadline
// strictly precedes the event date and both are strictly in the future.
func ValidateSchedule(date, deadline, now time.Time) error {
	if !deadline.Before(date) {
		return errors.New("deadline must be before event date")
	}
	if !deadline.After(now) || !date.After(now) {
		return errors.New("deadline must be before event date and not in the past")
	}
	return nil
}

// NormalizeFormat validates the mode/venue and participation/team-size pairs.
func NormalizeFormat(mode, venue, participation string, teamSize *int) (string, string, string, *int, error) {
	if mode == "" {
		mode = ModeOnline
	}
	if mode != ModeOnline && mode != ModeOffline {
		return "", "", "", nil, errors.New("mode must be online or offline")
	}
	if mode == ModeOffline && venue == "" {
		return "", "", "", nil, errors.New("venue is required for offline events")
	}
	if mode == ModeOnline {
		venue = ""
	}

	if participation == "" {
		participation = ParticipationIndividual
	}
	if participation != ParticipationIndividual && participation != ParticipationTeam {
		return "", "", "", nil, errors.New("participation_type must be individual or team")
	}
	if participation == ParticipationTeam {
		if teamSize == nil || *teamSize < 2 {
			return "", "", "", nil, errors.New("team events require a team size of at least 2")
		}
	} else {
		teamSize = nil
	}

	return mode, venue, participation, teamSize, nil
}

// ApplyUpdate copies supplied fields onto the event and returns the names of
// the fields that actually changed.
func ApplyUpdate(e *Event, req *UpdateEventRequest) ([]string, error) {
	var changed []string

	setString := func(name string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = append(changed, name)
		}
	}

	setString("title", &e.Title, req.Title)
	setString("description", &e.Description, req.Description)
	setString("poster_url", &e.PosterURL, req.PosterURL)
	setString("prizes", &e.Prizes, req.Prizes)
	setString("eligibility", &e.Eligibility, req.Eligibility)
	setString("category", &e.Category, req.Category)
	setString("mode", &e.Mode, req.Mode)
	setString("venue", &e.Venue, req.Venue)
	setString("participation_type", &e.ParticipationType, req.ParticipationType)

	if req.TeamSize != nil && (e.TeamSize == nil || *e.TeamSize != *req.TeamSize) {
		e.TeamSize = req.TeamSize
		changed = append(changed, "team_size")
	}

	if req.Date != nil {
		date, err := parseISO(*req.Date)
		if err != nil {
			return nil, errors.New("invalid date format, use ISO format")
		}
		if !date.Equal(e.Date) {
			e.Date = date
			changed = append(changed, "date")
		}
	}
	if req.Deadline != nil {
		deadline, err := parseISO(*req.Deadline)
		if err != nil {
			return nil, errors.New("invalid deadline format, use ISO format")
		}
		if !deadline.Equal(e.Deadline) {
			e.Deadline = deadline
			changed = append(changed, "deadline")
		}
	}

	return changed, nil
}

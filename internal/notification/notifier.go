package notification

import (
	"fmt"
	"log"
)

// Change kinds broadcast to participants.
const (
	ChangeUpdated   = "event_updated"
	ChangeCancelled = "event_cancelled"
)

// ChangeDetails describes the mutation being broadcast.
type ChangeDetails struct {
	EventTitle    string
	UpdatedFields []string
	OrganiserName string
}

// Participant is a registered user to be notified.
type Participant struct {
	Name  string
	Email string
}

// Notifier is the observer capability: one concrete variant per channel.
type Notifier interface {
	Notify(changeKind string, details ChangeDetails, participants []Participant) error
}

// ParticipantSource resolves the current registrants of an event.
type ParticipantSource interface {
	ResolveParticipants(eventID uint) ([]Participant, error)
}

// Hub is the subject in the fan-out: it holds the attached notifiers and
// broadcasts event mutations to every one of them. Observers are attached once
// at startup; Broadcast runs inline on the triggering request.
type Hub struct {
	source    ParticipantSource
	observers []Notifier
}

func NewHub(source ParticipantSource) *Hub {
	return &Hub{source: source}
}

// Attach appends an observer unless the same instance is already attached.
func (h *Hub) Attach(n Notifier) {
	for _, existing := range h.observers {
		if existing == n {
			return
		}
	}
	h.observers = append(h.observers, n)
	log.Printf("✅ %T attached to notification hub", n)
}

// Detach removes an observer; no-op when absent.
func (h *Hub) Detach(n Notifier) {
	for i, existing := range h.observers {
		if existing == n {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the attached notifiers in attachment order.
func (h *Hub) Observers() []Notifier {
	return h.observers
}

// Broadcast resolves the event's registrants and invokes every attached
// notifier in attachment order. A failing or panicking observer is logged and
// skipped; Broadcast never propagates observer failures to the caller.
func (h *Hub) Broadcast(changeKind string, details ChangeDetails, eventID uint) {
	participants, err := h.source.ResolveParticipants(eventID)
	if err != nil {
		log.Printf("⚠️ Failed to resolve participants for event #%d: %v", eventID, err)
		return
	}

	if len(participants) == 0 {
		log.Printf("ℹ️ No registered participants to notify for event #%d", eventID)
		return
	}

	log.Printf("🔔 Notifying %d registered participants about: %s", len(participants), changeKind)

	for _, observer := range h.observers {
		h.notifyOne(observer, changeKind, details, participants)
	}
}

func (h *Hub) notifyOne(observer Notifier, changeKind string, details ChangeDetails, participants []Participant) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Panic in %T: %v", observer, r)
		}
	}()

	if err := observer.Notify(changeKind, details, participants); err != nil {
		log.Printf("⚠️ Error in %T: %v", observer, err)
	}
}

// String helper for log lines naming a change kind.
func changeLabel(changeKind string) string {
	switch changeKind {
	case ChangeUpdated:
		return "Event Updated"
	case ChangeCancelled:
		return "Event Cancelled"
	}
	return fmt.Sprintf("Event Change (%s)", changeKind)
}

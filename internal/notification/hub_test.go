package notification

import (
	"errors"
	"testing"
)

type fakeSource struct {
	participants []Participant
	err          error
}

func (f *fakeSource) ResolveParticipants(eventID uint) ([]Participant, error) {
	return f.participants, f.err
}

type recordingNotifier struct {
	calls []string
	fail  bool
	panic bool
}

func (r *recordingNotifier) Notify(changeKind string, details ChangeDetails, participants []Participant) error {
	r.calls = append(r.calls, changeKind)
	if r.panic {
		panic("notifier exploded")
	}
	if r.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func TestHubAttachRejectsDuplicate(t *testing.T) {
	hub := NewHub(&fakeSource{})
	n := &recordingNotifier{}

	hub.Attach(n)
	hub.Attach(n)

	if got := len(hub.Observers()); got != 1 {
		t.Fatalf("expected 1 observer after duplicate attach, got %d", got)
	}
}

func TestHubDetach(t *testing.T) {
	hub := NewHub(&fakeSource{})
	a := &recordingNotifier{}
	b := &recordingNotifier{}

	hub.Attach(a)
	hub.Attach(b)
	hub.Detach(a)

	observers := hub.Observers()
	if len(observers) != 1 {
		t.Fatalf("expected 1 observer after detach, got %d", len(observers))
	}
	if observers[0] != Notifier(b) {
		t.Errorf("wrong observer survived detach")
	}

	// detaching an absent observer is a no-op
	hub.Detach(a)
	if got := len(hub.Observers()); got != 1 {
		t.Errorf("expected detach of absent observer to be a no-op, got %d observers", got)
	}
}

func TestHubBroadcastReachesAllObservers(t *testing.T) {
	source := &fakeSource{participants: []Participant{
		{Name: "Asha", Email: "asha@example.com"},
		{Name: "Ravi", Email: "ravi@example.com"},
	}}
	hub := NewHub(source)

	first := &recordingNotifier{}
	second := &recordingNotifier{}
	hub.Attach(first)
	hub.Attach(second)

	hub.Broadcast(ChangeUpdated, ChangeDetails{EventTitle: "Hackathon"}, 7)

	if len(first.calls) != 1 || first.calls[0] != ChangeUpdated {
		t.Errorf("first observer calls = %v", first.calls)
	}
	if len(second.calls) != 1 {
		t.Errorf("second observer calls = %v", second.calls)
	}
}

func TestHubBroadcastSkipsWhenNoParticipants(t *testing.T) {
	hub := NewHub(&fakeSource{})
	n := &recordingNotifier{}
	hub.Attach(n)

	hub.Broadcast(ChangeCancelled, ChangeDetails{EventTitle: "Empty"}, 3)

	if len(n.calls) != 0 {
		t.Fatalf("expected no notifications for event without registrants, got %d", len(n.calls))
	}
}

func TestHubBroadcastAbsorbsObserverFailures(t *testing.T) {
	source := &fakeSource{participants: []Participant{{Name: "Asha", Email: "asha@example.com"}}}
	hub := NewHub(source)

	failing := &recordingNotifier{fail: true}
	panicking := &recordingNotifier{panic: true}
	healthy := &recordingNotifier{}
	hub.Attach(failing)
	hub.Attach(panicking)
	hub.Attach(healthy)

	hub.Broadcast(ChangeUpdated, ChangeDetails{EventTitle: "Resilient"}, 5)

	if len(healthy.calls) != 1 {
		t.Fatalf("healthy observer should still be notified after failures, got %d calls", len(healthy.calls))
	}
}

func TestHubBroadcastSkipsOnResolveError(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	hub := NewHub(source)
	n := &recordingNotifier{}
	hub.Attach(n)

	hub.Broadcast(ChangeUpdated, ChangeDetails{}, 1)

	if len(n.calls) != 0 {
		t.Fatalf("expected no notifications when participant resolution fails")
	}
}

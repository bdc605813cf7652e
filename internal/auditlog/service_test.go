package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
)

type scriptedReader struct {
	steps []func() (kafka.Message, error)
	pos   int
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if r.pos >= len(r.steps) {
		return kafka.Message{}, io.EOF
	}
	step := r.steps[r.pos]
	r.pos++
	return step()
}

type capturingRepo struct {
	entries []AuditLog
}

func (c *capturingRepo) Create(ctx context.Context, log *AuditLog) error {
	c.entries = append(c.entries, *log)
	return nil
}

func (c *capturingRepo) ListByEvent(ctx context.Context, eventID uint, limit int) ([]AuditLog, error) {
	return c.entries, nil
}

func auditMessage(t *testing.T, entry AuditLog) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("failed to marshal audit entry: %v", err)
	}
	return kafka.Message{Value: payload}
}

func TestConsumeSurvivesTransientReadError(t *testing.T) {
	msg := auditMessage(t, AuditLog{ID: 77, Action: "EVENT_CREATED", Status: "success"})

	reader := &scriptedReader{steps: []func() (kafka.Message, error){
		func() (kafka.Message, error) { return kafka.Message{}, errors.New("broker hiccup") },
		func() (kafka.Message, error) { return msg, nil },
	}}
	repo := &capturingRepo{}

	consumeAuditMessages(reader, repo)

	if len(repo.entries) != 1 {
		t.Fatalf("expected the message after the transient error to be persisted, got %d entries", len(repo.entries))
	}
	if repo.entries[0].Action != "EVENT_CREATED" {
		t.Errorf("action = %q", repo.entries[0].Action)
	}
	// producer-side IDs never carry over into the local table
	if repo.entries[0].ID != 0 {
		t.Errorf("expected ID reset before insert, got %d", repo.entries[0].ID)
	}
}

func TestConsumeSkipsMalformedMessages(t *testing.T) {
	good := auditMessage(t, AuditLog{Action: "EVENT_DELETED", Status: "success"})

	reader := &scriptedReader{steps: []func() (kafka.Message, error){
		func() (kafka.Message, error) { return kafka.Message{Value: []byte("not json")}, nil },
		func() (kafka.Message, error) { return good, nil },
	}}
	repo := &capturingRepo{}

	consumeAuditMessages(reader, repo)

	if len(repo.entries) != 1 {
		t.Fatalf("expected only the well-formed message persisted, got %d", len(repo.entries))
	}
}

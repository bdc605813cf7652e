package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/eventsynk/eventsynk-backend/config"
	"github.com/eventsynk/eventsynk-backend/utils"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error
}

type service struct {
	repo     Repository
	producer *utils.KafkaProducer
}

// NewService wires the audit trail. With a Kafka producer present, entries go
// through the audit topic and the consumer persists them; otherwise they are
// written synchronously.
func NewService(repo Repository, producer *utils.KafkaProducer) Service {
	return &service{repo: repo, producer: producer}
}

// LogAction creates a new audit log entry
func (s *service) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   string(detailsJSON),
		IPAddress: ip,
		Status:    status,
	}

	if s.producer != nil {
		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := s.producer.Publish(ctx, payload); err != nil {
			log.Printf("⚠️ Kafka publish failed, writing audit record directly: %v", err)
			return s.repo.Create(ctx, entry)
		}
		return nil
	}

	return s.repo.Create(ctx, entry)
}

// StartKafkaConsumer drains the audit topic into the database. Runs for the
// lifetime of the process; started only when brokers are configured.
func StartKafkaConsumer(cfg *config.Config, repo Repository) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}

	reader := utils.NewKafkaReader(cfg)

	go func() {
		defer reader.Close()
		consumeAuditMessages(reader, repo)
	}()

	log.Println("✅ Audit Kafka consumer started")
}

// auditMessageReader is the slice of kafka.Reader the consumer loop needs.
type auditMessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// consumeAuditMessages persists audit topic messages until the reader is
// closed. Transient read errors are retried with backoff rather than killing
// the pipeline.
func consumeAuditMessages(reader auditMessageReader, repo Repository) {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		msg, err := reader.ReadMessage(context.Background())
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Println("ℹ️ Audit consumer stopped: reader closed")
				return
			}
			log.Printf("⚠️ Audit consumer read error (retrying in %s): %v", backoff, err)
			time.Sleep(backoff)
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		var entry AuditLog
		if err := json.Unmarshal(msg.Value, &entry); err != nil {
			log.Printf("⚠️ Audit consumer unmarshal error: %v", err)
			continue
		}
		entry.ID = 0

		if err := repo.Create(context.Background(), &entry); err != nil {
			log.Printf("⚠️ Audit consumer persist error: %v", err)
		}
	}
}

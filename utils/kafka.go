package utils

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/eventsynk/eventsynk-backend/config"
)

// KafkaProducer publishes audit records to the audit topic.
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer returns nil when no brokers are configured; callers then
// fall back to writing audit records directly to the database.
func NewKafkaProducer(cfg *config.Config) *KafkaProducer {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("ℹ️ Kafka not configured - audit records go straight to the database")
		return nil
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}

	log.Printf("✅ Kafka audit producer ready (topic=%s)", cfg.KafkaTopic)
	return &KafkaProducer{writer: writer}
}

func (p *KafkaProducer) Publish(ctx context.Context, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Value: value})
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NewKafkaReader builds the consumer for the audit topic.
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: "eventsynk-audit",
	})
}

package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/infrastructure/config"
	"eventos_inscricoes/internal/usecase/interfaces"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes domain events as JSON, keyed by the aggregate id so
// that events of one checkout stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

// NewEventPublisher returns a Kafka publisher, or a log-only publisher when
// KAFKA_BROKERS is empty.
func NewEventPublisher(cfg config.KafkaConfig) interfaces.IEventPublisher {
	if len(cfg.Brokers) == 0 {
		log.Warn("[events][kafka] KAFKA_BROKERS not set, domain events are only logged")
		return LogPublisher{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	log.WithFields(log.Fields{"brokers": cfg.Brokers, "topic": cfg.Topic}).Info("[events][kafka] producer configured")
	return &KafkaPublisher{writer: writer, topic: cfg.Topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event interfaces.DomainEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"type": event.Type, "key": event.Key, "topic": p.topic}).Debug("[events][kafka] published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event interfaces.DomainEvent) error {
	log.WithFields(log.Fields{"type": event.Type, "key": event.Key, "data": event.Data}).Info("[events][log] domain event")
	return nil
}

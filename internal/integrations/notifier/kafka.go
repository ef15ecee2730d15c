package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// MessageWriter часть *kafka.Writer, нужная публикатору
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события уведомлений в топик.
// Ключ сообщения user_id: события одного пользователя попадают в одну партицию.
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
}

// NewKafkaWriter создает writer с балансировкой по ключу
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// NewKafkaPublisher создает публикатор поверх writer
func NewKafkaPublisher(writer MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic}
}

// Send публикует уведомление как событие
func (p *KafkaPublisher) Send(ctx context.Context, n domain.Notification) error {
	event := Event{
		EventID:       uuid.NewString(),
		EventType:     string(n.Type),
		UserID:        n.UserID,
		AppointmentID: n.AppointmentID,
		Title:         n.Title,
		Message:       n.Message,
		Channel:       string(n.Channel),
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(n.UserID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s: %v", ErrPublish, p.topic, err)
	}

	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/google/uuid"
)

// Routing keys for consultation lifecycle events.
const (
	NotificationExchange = "remedix.consultations"

	RKConsultationBooked      = "consultation.booked"
	RKConsultationRescheduled = "consultation.rescheduled"
	RKConsultationCompleted   = "consultation.completed"
)

const publishTimeout = 5 * time.Second

// ConsultationBooked carries enough for a confirmation message.
type ConsultationBooked struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Fee            int64     `json:"fee"`
}

type ConsultationRescheduled struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

type ConsultationCompleted struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
}

// Notifier publishes consultation lifecycle events after a commit. Delivery
// is best-effort: failures are logged, never surfaced to the booking flow.
type Notifier interface {
	ConsultationBooked(ctx context.Context, event ConsultationBooked)
	ConsultationRescheduled(ctx context.Context, event ConsultationRescheduled)
	ConsultationCompleted(ctx context.Context, event ConsultationCompleted)
}

// NotificationService publishes events to a durable RabbitMQ topic exchange.
type NotificationService struct {
	channel *amqp.Channel
	log     *logrus.Logger
}

func NewNotificationService(conn *amqp.Connection, log *logrus.Logger) (*NotificationService, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := ch.ExchangeDeclare(NotificationExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &NotificationService{channel: ch, log: log}, nil
}

func (s *NotificationService) ConsultationBooked(ctx context.Context, event ConsultationBooked) {
	s.publish(ctx, RKConsultationBooked, event)
}

func (s *NotificationService) ConsultationRescheduled(ctx context.Context, event ConsultationRescheduled) {
	s.publish(ctx, RKConsultationRescheduled, event)
}

func (s *NotificationService) ConsultationCompleted(ctx context.Context, event ConsultationCompleted) {
	s.publish(ctx, RKConsultationCompleted, event)
}

func (s *NotificationService) publish(ctx context.Context, routingKey string, event interface{}) {
	body, err := json.Marshal(event)
	if err != nil {
		s.log.Errorf("Failed to encode %s event: %+v", routingKey, err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = s.channel.PublishWithContext(pubCtx, NotificationExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		// Non-fatal: the reservation is already committed.
		s.log.Warnf("Failed to publish %s event: %+v", routingKey, err)
		return
	}

	s.log.Infof("Published %s event", routingKey)
}

func (s *NotificationService) Close() error {
	return s.channel.Close()
}

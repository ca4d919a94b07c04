package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// WelcomeNotifier sends the post-registration message to a new applicant.
type WelcomeNotifier interface {
	SendWelcome(to, name, city string) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier WelcomeNotifier
}

func NewWorker(ch *amqp.Channel, notifier WelcomeNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register rabbitmq consumer: %w", err)
	}

	log.Info().Str("queue", queueName).Msg("worker waiting for messages")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handleDelivery(d)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	if err := w.processMessage(d.Body); err != nil {
		log.Error().Err(err).Msg("applicant event rejected")
		// dead-lettered, not requeued
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

func (w *Worker) processMessage(body []byte) error {
	var payload ApplicantRegisteredPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if payload.Email == "" {
		return fmt.Errorf("payload for applicant %s has no email", payload.ApplicantID)
	}

	if err := w.Notifier.SendWelcome(payload.Email, payload.Name, payload.City); err != nil {
		return fmt.Errorf("send welcome to %s: %w", payload.ApplicantID, err)
	}

	log.Info().Str("applicant_id", payload.ApplicantID).Msg("welcome message sent")
	return nil
}

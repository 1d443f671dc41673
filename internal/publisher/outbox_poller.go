package publisher

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

const saleEventsTopic = "pos.sale-events"

// OutboxStore is the outbox read/ack surface of the repository.
type OutboxStore interface {
	GetUnpublishedEvents(ctx context.Context, limit int) ([]*repository.SaleEvent, error)
	MarkEventPublished(ctx context.Context, id int64) error
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller drains the sale-event outbox into Kafka for the kitchen
// display feed. Events are written inside the sale commit, so at-least-once
// delivery here never invents or loses a sale.
type OutboxPoller struct {
	tick   time.Duration
	store  OutboxStore
	writer MessageWriter
	log    *logrus.Logger
}

func NewOutboxPoller(store OutboxStore, log *logrus.Logger, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  saleEventsTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		tick:   time.Second,
		store:  store,
		writer: w,
		log:    log,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.store.GetUnpublishedEvents(ctx, 100)
	if err != nil {
		p.log.WithError(err).Error("failed to fetch outbox events")
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			p.log.WithError(err).WithField("event_id", event.ID).Error("failed to publish event")
			continue
		}

		if err := p.store.MarkEventPublished(ctx, event.ID); err != nil {
			p.log.WithError(err).WithField("event_id", event.ID).Error("failed to mark event as published")
			continue
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *repository.SaleEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // transaction id for per-sale ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

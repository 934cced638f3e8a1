package broker

import (
	"context"
	"time"

	"cryzo-api/internal/models"

	"github.com/google/uuid"
)

// EventPublisher handles publishing domain events. All publishes are
// fire-and-forget from the caller's point of view: a broker failure must
// never fail the request that produced the event.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// PublishOrderCreated publishes an OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	event := &models.OrderCreatedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeOrderCreated),
		OrderID:       order.ID.Hex(),
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Items:         order.Items,
	}
	return ep.producer.PublishEvent(ctx, "order-"+event.OrderID, event)
}

// PublishCheckoutStarted publishes a CheckoutStarted event
func (ep *EventPublisher) PublishCheckoutStarted(ctx context.Context, sessionID, customerEmail string, totalAmount float64, itemCount int) error {
	event := &models.CheckoutStartedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeCheckoutStarted),
		SessionID:     sessionID,
		CustomerEmail: customerEmail,
		TotalAmount:   totalAmount,
		ItemCount:     itemCount,
	}
	return ep.producer.PublishEvent(ctx, "checkout-"+sessionID, event)
}

// PublishInventoryImported publishes an InventoryImported event
func (ep *EventPublisher) PublishInventoryImported(ctx context.Context, files, parsed, unique, created, updated int) error {
	event := &models.InventoryImportedEvent{
		BaseEvent:      newBaseEvent(models.EventTypeInventoryImported),
		FilesProcessed: files,
		RecordsParsed:  parsed,
		UniqueRecords:  unique,
		Created:        created,
		Updated:        updated,
	}
	return ep.producer.PublishEvent(ctx, "import-"+event.EventID, event)
}

package models

import "time"

// Event types
const (
	EventTypeOrderCreated      = "ORDER_CREATED"
	EventTypeCheckoutStarted   = "CHECKOUT_STARTED"
	EventTypeInventoryImported = "INVENTORY_IMPORTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when an order record is written
type OrderCreatedEvent struct {
	BaseEvent
	OrderID       string     `json:"order_id"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	Items         []CartItem `json:"items"`
}

// CheckoutStartedEvent published when a payment session is created
type CheckoutStartedEvent struct {
	BaseEvent
	SessionID     string  `json:"session_id"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	ItemCount     int     `json:"item_count"`
}

// InventoryImportedEvent published after a CSV ingestion batch completes
type InventoryImportedEvent struct {
	BaseEvent
	FilesProcessed int `json:"files_processed"`
	RecordsParsed  int `json:"records_parsed"`
	UniqueRecords  int `json:"unique_records"`
	Created        int `json:"created"`
	Updated        int `json:"updated"`
}

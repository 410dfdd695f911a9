package domain

import "time"

// Event types
const (
	EventTypeAccountRegistered = "account.registered"
	EventTypeWalletRecharged   = "wallet.recharged"
	EventTypeTransferCompleted = "transfer.completed"

	EventTypeLoveRequestCreated  = "love_request.created"
	EventTypeLoveRequestAccepted = "love_request.accepted"
	EventTypeLoveRequestRejected = "love_request.rejected"

	EventTypeOrderCreated           = "order.created"
	EventTypeOrderCanceled          = "order.canceled"
	EventTypeOrderAccepted          = "order.accepted"
	EventTypeOrderDeliveryRequested = "order.delivery_requested"
	EventTypeOrderDelivered         = "order.delivered"
	EventTypeOrderDeliveryRejected  = "order.delivery_rejected"
	EventTypeOrderAmountReturned    = "order.amount_returned"
)

// Aggregate types
const (
	AggregateTypeAccount     = "account"
	AggregateTypeTransfer    = "transfer"
	AggregateTypeLoveRequest = "love_request"
	AggregateTypeOrder       = "order"
)

// Payload keys read by the notification publisher.
const (
	PayloadRecipients = "recipients"
	PayloadMessage    = "message"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewOutboxEvent builds an unpublished event addressed to recipients.
func NewOutboxEvent(id, aggregateType, aggregateID, eventType, message string, recipients []string, fields map[string]any, now time.Time) *OutboxEvent {
	payload := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload[PayloadRecipients] = recipients
	payload[PayloadMessage] = message

	return &OutboxEvent{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	}
}

// Recipients returns the account ids the event should be delivered to.
// Payloads read back from storage carry []any instead of []string.
func (e *OutboxEvent) Recipients() []string {
	switch v := e.Payload[PayloadRecipients].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Message returns the human readable text of the event.
func (e *OutboxEvent) Message() string {
	msg, _ := e.Payload[PayloadMessage].(string)
	return msg
}

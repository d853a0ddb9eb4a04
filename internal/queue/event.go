// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a payment is confirmed and the
// reservation reaches its terminal CONFIRMED state.  It carries enough for
// downstream consumers (logging, notifications, analytics) to work without
// querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Code          string `json:"code"`
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	EventDate     string `json:"event_date"`
	Location      string `json:"location"`
	Theme         string `json:"theme"`
	Category      string `json:"category"`
	Plan          string `json:"plan"`
	TotalCents    int64  `json:"total_cents"`
	PaymentMethod string `json:"payment_method"`
	ConfirmedAt   string `json:"confirmed_at"`
}

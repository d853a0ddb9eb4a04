package model

import "time"

// Reservation statuses.  AWAITING_PAYMENT is the only non-terminal state:
// a reservation leaves it exactly once, to CONFIRMED, CANCELLED or EXPIRED.
const (
	StatusAwaitingPayment = "AWAITING_PAYMENT"
	StatusConfirmed       = "CONFIRMED"
	StatusCancelled       = "CANCELLED"
	StatusExpired         = "EXPIRED"
)

// Reservation is the durable record of a submitted quote.  The price columns
// are a snapshot taken at creation time; later quote edits or catalog changes
// never alter them.
//
// Fields:
//  ID            – primary key identifier.
//  Code          – human-readable sequence code (RSV-000123).
//  CustomerName  – who booked.
//  Phone         – customer phone, also the customer-directory key.
//  Email         – optional contact email.
//  EventDate     – day of the event.
//  Location      – event address.
//  Theme         – decoration theme.
//  Category      – event category (children's birthday, baby reveal...).
//  Plan          – plan name at time of booking.
//  PlanCents, UpsellsCents, ServicesCents, DiscountCents, TotalCents –
//                  immutable price breakdown in cents.
//  PaymentMethod – chosen split ("50/50" or "100").
//  Status        – lifecycle state, see constants above.
//  ArrivalAt     – logistics check-in timestamp, set once on a confirmed
//                  reservation; never changes Status.
//  CreatedAt     – creation timestamp.
//  ExpiresAt     – payment deadline; the sweep expires the reservation when
//                  still AWAITING_PAYMENT past this instant.
type Reservation struct {
	ID            uint64     // reservations.id
	Code          string     // reservations.code
	CustomerName  string     // reservations.customer_name
	Phone         string     // reservations.phone
	Email         *string    // reservations.email (nullable)
	EventDate     time.Time  // reservations.event_date
	Location      string     // reservations.location
	Theme         string     // reservations.theme
	Category      string     // reservations.category
	Plan          string     // reservations.plan
	PlanCents     int64      // reservations.plan_cents
	UpsellsCents  int64      // reservations.upsells_cents
	ServicesCents int64      // reservations.services_cents
	DiscountCents int64      // reservations.discount_cents
	TotalCents    int64      // reservations.total_cents
	PaymentMethod string     // reservations.payment_method
	Status        string     // reservations.status
	ArrivalAt     *time.Time // reservations.arrival_at (nullable)
	CreatedAt     time.Time  // reservations.created_at
	ExpiresAt     time.Time  // reservations.expires_at
}

// Terminal reports whether the reservation is in a final state.
func (r Reservation) Terminal() bool {
	return r.Status != StatusAwaitingPayment
}

// Package booking implements the reservation lifecycle: creation from a
// validated quote, payment confirmation, cancellation, the logistics
// check-in marker and the expiration sweep.  The actual state transitions
// are delegated to the store as single atomic operations; this layer
// validates input, snapshots pricing and fans out the side effects that may
// fail without failing the transition (ledger, customer directory, events).
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/marianaluz/balloon-event-booking/internal/model"
	"github.com/marianaluz/balloon-event-booking/internal/queue"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
)

// ReservationStore is the persistence boundary for reservations.  Every
// lifecycle method must be atomic server-side: a conditional transition that
// touches nothing when the reservation already left AWAITING_PAYMENT.
// *repository.ReservationRepo satisfies this interface.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	ConfirmAwaiting(ctx context.Context, id uint64) (model.Reservation, error)
	CancelAwaiting(ctx context.Context, id uint64) error
	MarkArrival(ctx context.Context, id uint64) error
	SweepExpired(ctx context.Context) ([]uint64, error)
}

// CustomerDirectory records who books and what they spend.
type CustomerDirectory interface {
	UpsertFromReservation(ctx context.Context, name, phone string, email *string) error
	RecordPurchase(ctx context.Context, phone string, amountCents int64) error
}

// Ledger receives financial entries generated by confirmations.
type Ledger interface {
	Insert(ctx context.Context, e *model.FinancialEntry) error
}

// EventPublisher pushes a confirmed-reservation event to the broker.
type EventPublisher func(ctx context.Context, ev queue.ReservationConfirmedEvent) error

// CustomerInfo is what checkout collects about the person booking.
type CustomerInfo struct {
	Name  string
	Phone string
	Email *string
}

// Service wires the lifecycle together.  Now is swappable for tests.
type Service struct {
	Store     ReservationStore
	Customers CustomerDirectory
	Finance   Ledger
	Publish   EventPublisher

	// GraceWindow is how long a reservation may sit in AWAITING_PAYMENT
	// before the sweep reclaims it.
	GraceWindow time.Duration

	Now func() time.Time
}

// NewService builds a Service with the default clock.
func NewService(store ReservationStore, customers CustomerDirectory, finance Ledger, publish EventPublisher, grace time.Duration) *Service {
	if grace <= 0 {
		grace = 30 * time.Minute
	}
	return &Service{
		Store:       store,
		Customers:   customers,
		Finance:     finance,
		Publish:     publish,
		GraceWindow: grace,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateReservation validates the quote, snapshots its pricing into an
// immutable breakdown and persists the reservation in AWAITING_PAYMENT with
// a payment deadline.  An incomplete quote fails before any side effect.
func (s *Service) CreateReservation(ctx context.Context, q *quote.Quote, cust CustomerInfo) (model.Reservation, error) {
	if err := q.Validate(); err != nil {
		return model.Reservation{}, err
	}
	if cust.Name == "" || cust.Phone == "" {
		return model.Reservation{}, fmt.Errorf("%w: missing customer name or phone", quote.ErrIncompleteQuote)
	}
	eventDate, err := time.Parse(quote.DateLayout, q.EventDate)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("%w: bad event date", quote.ErrInvalidField)
	}

	now := s.Now()
	// The draft may have sat in Redis for hours; a date that was valid when
	// the customer set it can be in the past by checkout.
	if eventDate.Before(now.Truncate(24 * time.Hour)) {
		return model.Reservation{}, fmt.Errorf("%w: event date has passed", quote.ErrInvalidField)
	}
	res := model.Reservation{
		CustomerName:  cust.Name,
		Phone:         cust.Phone,
		Email:         cust.Email,
		EventDate:     eventDate,
		Location:      q.Location,
		Theme:         q.Theme,
		Category:      q.EventType,
		Plan:          q.PlanName,
		PlanCents:     q.Pricing.PlanCents,
		UpsellsCents:  q.Pricing.UpsellsCents,
		ServicesCents: q.Pricing.ServicesCents,
		DiscountCents: q.Pricing.DiscountCents,
		TotalCents:    q.Pricing.TotalCents,
		PaymentMethod: string(q.PaymentSplit),
		Status:        model.StatusAwaitingPayment,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.GraceWindow),
	}
	if err := s.Store.Create(ctx, &res); err != nil {
		return model.Reservation{}, err
	}

	// Directory upkeep must not fail the booking.
	if s.Customers != nil {
		if err := s.Customers.UpsertFromReservation(ctx, cust.Name, cust.Phone, cust.Email); err != nil {
			log.Printf("booking: customer upsert failed for %s: %v", cust.Phone, err)
		}
	}
	return res, nil
}

// ConfirmPayment advances a reservation from AWAITING_PAYMENT to CONFIRMED.
// The store performs the transition and the daily-agenda slot claim in one
// atomic call; on success this layer records the income ledger rows, bumps
// the customer directory and publishes the confirmed event.  Those side
// effects are logged, never allowed to undo a committed confirmation.
func (s *Service) ConfirmPayment(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := s.Store.ConfirmAwaiting(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}

	s.recordIncome(ctx, res)
	if s.Customers != nil {
		if err := s.Customers.RecordPurchase(ctx, res.Phone, res.TotalCents); err != nil {
			log.Printf("booking: record purchase failed for %s: %v", res.Phone, err)
		}
	}
	if s.Publish != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			Code:          res.Code,
			CustomerName:  res.CustomerName,
			Phone:         res.Phone,
			EventDate:     res.EventDate.Format(quote.DateLayout),
			Location:      res.Location,
			Theme:         res.Theme,
			Category:      res.Category,
			Plan:          res.Plan,
			TotalCents:    res.TotalCents,
			PaymentMethod: res.PaymentMethod,
			ConfirmedAt:   s.Now().Format(time.RFC3339),
		}
		if err := s.Publish(ctx, ev); err != nil {
			log.Printf("booking: publish confirmed event failed for %s: %v", res.Code, err)
		}
	}
	return res, nil
}

// recordIncome writes the ledger rows for a confirmed payment: what was
// received now and, for the 50/50 split, the pending remainder due on the
// event date.
func (s *Service) recordIncome(ctx context.Context, res model.Reservation) {
	if s.Finance == nil {
		return
	}
	received := res.TotalCents
	if res.PaymentMethod == string(quote.SplitHalfHalf) {
		received = res.TotalCents / 2
	}
	now := s.Now()
	rid := res.ID
	entry := model.FinancialEntry{
		ReservationID: &rid,
		Type:          model.EntryIncome,
		Category:      "reservation",
		Description:   fmt.Sprintf("payment for %s", res.Code),
		AmountCents:   received,
		PaymentMethod: res.PaymentMethod,
		Status:        model.EntryReceived,
		PaidAt:        &now,
	}
	if err := s.Finance.Insert(ctx, &entry); err != nil {
		log.Printf("booking: ledger income insert failed for %s: %v", res.Code, err)
	}
	if remainder := res.TotalCents - received; remainder > 0 {
		due := res.EventDate
		pending := model.FinancialEntry{
			ReservationID: &rid,
			Type:          model.EntryIncome,
			Category:      "reservation",
			Description:   fmt.Sprintf("balance for %s", res.Code),
			AmountCents:   remainder,
			PaymentMethod: res.PaymentMethod,
			Status:        model.EntryPending,
			DueDate:       &due,
		}
		if err := s.Finance.Insert(ctx, &pending); err != nil {
			log.Printf("booking: ledger balance insert failed for %s: %v", res.Code, err)
		}
	}
}

// ConfirmReservation is the operator-facing name for the same transition as
// ConfirmPayment; both advance AWAITING_PAYMENT to CONFIRMED.
func (s *Service) ConfirmReservation(ctx context.Context, id uint64) (model.Reservation, error) {
	return s.ConfirmPayment(ctx, id)
}

// CancelReservation moves AWAITING_PAYMENT to CANCELLED.  Terminal states
// report ErrInvalidTransition from the store.
func (s *Service) CancelReservation(ctx context.Context, id uint64) error {
	return s.Store.CancelAwaiting(ctx, id)
}

// RegisterArrival records the logistics check-in for a CONFIRMED
// reservation without touching its status.
func (s *Service) RegisterArrival(ctx context.Context, id uint64) error {
	return s.Store.MarkArrival(ctx, id)
}

// SweepExpired expires every overdue AWAITING_PAYMENT reservation and
// returns the ids it reclaimed.  Safe to call at any frequency and
// concurrently with itself: each transition is conditional, so a second run
// over the same instant finds nothing left to expire.
func (s *Service) SweepExpired(ctx context.Context) ([]uint64, error) {
	ids, err := s.Store.SweepExpired(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		log.Printf("booking: sweep expired %d reservation(s)", len(ids))
	}
	return ids, nil
}

// GetReservation loads one reservation for display.
func (s *Service) GetReservation(ctx context.Context, id uint64) (model.Reservation, error) {
	return s.Store.GetByID(ctx, id)
}

// IsIncomplete reports whether err stems from a quote that cannot be
// submitted yet.
func IsIncomplete(err error) bool {
	return errors.Is(err, quote.ErrIncompleteQuote)
}

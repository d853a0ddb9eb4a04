package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
	"github.com/marianaluz/balloon-event-booking/internal/model"
	"github.com/marianaluz/balloon-event-booking/internal/queue"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
)

// fakeStore implements ReservationStore in memory.
type fakeStore struct {
	nextID   uint64
	rows     map[uint64]model.Reservation
	now      func() time.Time
	creates  int
	confirms int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows: map[uint64]model.Reservation{},
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *fakeStore) Create(_ context.Context, res *model.Reservation) error {
	s.nextID++
	res.ID = s.nextID
	res.Code = "RSV-000001"
	s.rows[res.ID] = *res
	s.creates++
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	r, ok := s.rows[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return r, nil
}

func (s *fakeStore) ConfirmAwaiting(_ context.Context, id uint64) (model.Reservation, error) {
	r, ok := s.rows[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	if r.Status != model.StatusAwaitingPayment {
		return model.Reservation{}, repository.ErrInvalidTransition
	}
	r.Status = model.StatusConfirmed
	s.rows[id] = r
	s.confirms++
	return r, nil
}

func (s *fakeStore) CancelAwaiting(_ context.Context, id uint64) error {
	r, ok := s.rows[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	if r.Status != model.StatusAwaitingPayment {
		return repository.ErrInvalidTransition
	}
	r.Status = model.StatusCancelled
	s.rows[id] = r
	return nil
}

func (s *fakeStore) MarkArrival(_ context.Context, id uint64) error {
	r, ok := s.rows[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	if r.Status != model.StatusConfirmed {
		return repository.ErrInvalidTransition
	}
	now := s.now()
	r.ArrivalAt = &now
	s.rows[id] = r
	return nil
}

func (s *fakeStore) SweepExpired(_ context.Context) ([]uint64, error) {
	now := s.now()
	ids := []uint64{}
	for id, r := range s.rows {
		if r.Status == model.StatusAwaitingPayment && !r.ExpiresAt.After(now) {
			r.Status = model.StatusExpired
			s.rows[id] = r
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeDirectory struct {
	upserts   int
	purchases []int64
}

func (d *fakeDirectory) UpsertFromReservation(context.Context, string, string, *string) error {
	d.upserts++
	return nil
}
func (d *fakeDirectory) RecordPurchase(_ context.Context, _ string, amount int64) error {
	d.purchases = append(d.purchases, amount)
	return nil
}

type fakeLedger struct {
	entries []model.FinancialEntry
}

func (l *fakeLedger) Insert(_ context.Context, e *model.FinancialEntry) error {
	e.ID = uint64(len(l.entries) + 1)
	l.entries = append(l.entries, *e)
	return nil
}

func completeQuote(t *testing.T) *quote.Quote {
	t.Helper()
	cat := catalog.Default()
	q := quote.New()
	q.SetEventType("children_birthday")
	if err := q.SetTheme("space"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if err := q.SetEventDate(time.Now().UTC().Add(96 * time.Hour).Format(quote.DateLayout)); err != nil {
		t.Fatalf("SetEventDate() error = %v", err)
	}
	if err := q.SetLocation("Avenida Central 45"); err != nil {
		t.Fatalf("SetLocation() error = %v", err)
	}
	if err := q.SelectPlan(cat, catalog.PlanPremium); err != nil {
		t.Fatalf("SelectPlan() error = %v", err)
	}
	if err := q.SetPaymentSplit(quote.SplitHalfHalf); err != nil {
		t.Fatalf("SetPaymentSplit() error = %v", err)
	}
	return q
}

func newTestService(store *fakeStore, dir *fakeDirectory, ledger *fakeLedger, publish EventPublisher) *Service {
	svc := NewService(store, dir, ledger, publish, 30*time.Minute)
	return svc
}

func TestCreateReservationSnapshotsQuote(t *testing.T) {
	store := newFakeStore()
	dir := &fakeDirectory{}
	svc := newTestService(store, dir, &fakeLedger{}, nil)

	q := completeQuote(t)
	res, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if res.Status != model.StatusAwaitingPayment {
		t.Errorf("Status = %v, want %v", res.Status, model.StatusAwaitingPayment)
	}
	if res.TotalCents != q.Pricing.TotalCents {
		t.Errorf("TotalCents = %v, want %v", res.TotalCents, q.Pricing.TotalCents)
	}
	if want := res.CreatedAt.Add(30 * time.Minute); !res.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", res.ExpiresAt, want)
	}
	if dir.upserts != 1 {
		t.Errorf("directory upserts = %v, want 1", dir.upserts)
	}
}

func TestCreateReservationIncompleteQuoteHasNoSideEffects(t *testing.T) {
	store := newFakeStore()
	dir := &fakeDirectory{}
	svc := newTestService(store, dir, &fakeLedger{}, nil)

	q := quote.New() // nothing set
	_, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if !errors.Is(err, quote.ErrIncompleteQuote) {
		t.Fatalf("CreateReservation() error = %v, want ErrIncompleteQuote", err)
	}
	if store.creates != 0 {
		t.Errorf("store creates = %v, want 0", store.creates)
	}
	if dir.upserts != 0 {
		t.Errorf("directory upserts = %v, want 0", dir.upserts)
	}
}

func TestCreateReservationRejectsDatePassedSinceQuoting(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeDirectory{}, &fakeLedger{}, nil)

	// Valid quote whose draft then lingers until after the event date.
	q := completeQuote(t)
	svc.Now = func() time.Time { return time.Now().UTC().Add(10 * 24 * time.Hour) }

	_, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if !errors.Is(err, quote.ErrInvalidField) {
		t.Fatalf("CreateReservation() with stale date error = %v, want ErrInvalidField", err)
	}
	if store.creates != 0 {
		t.Errorf("store creates = %v, want 0", store.creates)
	}
}

func TestCreateReservationAcceptsEventToday(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeDirectory{}, &fakeLedger{}, nil)

	q := completeQuote(t)
	eventDate, err := time.Parse(quote.DateLayout, q.EventDate)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", q.EventDate, err)
	}
	// Checkout on the morning of the event itself is still allowed.
	svc.Now = func() time.Time { return eventDate.Add(9 * time.Hour) }

	if _, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"}); err != nil {
		t.Errorf("CreateReservation() on event day error = %v", err)
	}
}

func TestCreateReservationRequiresContact(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeDirectory{}, &fakeLedger{}, nil)
	q := completeQuote(t)
	_, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana"})
	if !errors.Is(err, quote.ErrIncompleteQuote) {
		t.Errorf("CreateReservation() without phone error = %v, want ErrIncompleteQuote", err)
	}
}

func TestConfirmPaymentRecordsLedgerAndPublishes(t *testing.T) {
	store := newFakeStore()
	dir := &fakeDirectory{}
	ledger := &fakeLedger{}
	var published []queue.ReservationConfirmedEvent
	svc := newTestService(store, dir, ledger, func(_ context.Context, ev queue.ReservationConfirmedEvent) error {
		published = append(published, ev)
		return nil
	})

	q := completeQuote(t)
	res, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	confirmed, err := svc.ConfirmPayment(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("ConfirmPayment() error = %v", err)
	}
	if confirmed.Status != model.StatusConfirmed {
		t.Errorf("Status = %v, want %v", confirmed.Status, model.StatusConfirmed)
	}

	// 50/50 split: one received row for half, one pending row for the rest.
	if len(ledger.entries) != 2 {
		t.Fatalf("ledger entries = %v, want 2", len(ledger.entries))
	}
	half := res.TotalCents / 2
	if ledger.entries[0].AmountCents != half || ledger.entries[0].Status != model.EntryReceived {
		t.Errorf("first entry = %+v, want received %v", ledger.entries[0], half)
	}
	remainder := res.TotalCents - half
	if ledger.entries[1].AmountCents != remainder || ledger.entries[1].Status != model.EntryPending {
		t.Errorf("second entry = %+v, want pending %v", ledger.entries[1], remainder)
	}

	if len(dir.purchases) != 1 || dir.purchases[0] != res.TotalCents {
		t.Errorf("purchases = %v, want [%v]", dir.purchases, res.TotalCents)
	}
	if len(published) != 1 {
		t.Fatalf("published events = %v, want 1", len(published))
	}
	if published[0].ReservationID != res.ID || published[0].TotalCents != res.TotalCents {
		t.Errorf("event = %+v, want reservation %v total %v", published[0], res.ID, res.TotalCents)
	}
}

func TestConfirmPaymentUpfrontWritesSingleEntry(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, &fakeDirectory{}, ledger, nil)

	q := completeQuote(t)
	if err := q.SetPaymentSplit(quote.SplitFullUpfront); err != nil {
		t.Fatalf("SetPaymentSplit() error = %v", err)
	}
	res, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Bia", Phone: "11888880000"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if _, err := svc.ConfirmPayment(context.Background(), res.ID); err != nil {
		t.Fatalf("ConfirmPayment() error = %v", err)
	}

	if len(ledger.entries) != 1 {
		t.Fatalf("ledger entries = %v, want 1", len(ledger.entries))
	}
	if ledger.entries[0].AmountCents != res.TotalCents || ledger.entries[0].Status != model.EntryReceived {
		t.Errorf("entry = %+v, want received %v", ledger.entries[0], res.TotalCents)
	}
}

func TestConfirmPaymentFromTerminalState(t *testing.T) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, &fakeDirectory{}, ledger, nil)

	q := completeQuote(t)
	res, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if err := svc.CancelReservation(context.Background(), res.ID); err != nil {
		t.Fatalf("CancelReservation() error = %v", err)
	}

	_, err = svc.ConfirmPayment(context.Background(), res.ID)
	if !errors.Is(err, repository.ErrInvalidTransition) {
		t.Fatalf("ConfirmPayment() after cancel error = %v, want ErrInvalidTransition", err)
	}
	// A refused transition must not generate money rows.
	if len(ledger.entries) != 0 {
		t.Errorf("ledger entries = %v, want 0", len(ledger.entries))
	}
}

func TestCancelUnknownReservation(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeDirectory{}, &fakeLedger{}, nil)
	err := svc.CancelReservation(context.Background(), 42)
	if !errors.Is(err, repository.ErrReservationNotFound) {
		t.Errorf("CancelReservation() error = %v, want ErrReservationNotFound", err)
	}
}

func TestRegisterArrivalRequiresConfirmed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeDirectory{}, &fakeLedger{}, nil)

	q := completeQuote(t)
	res, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	if err := svc.RegisterArrival(context.Background(), res.ID); !errors.Is(err, repository.ErrInvalidTransition) {
		t.Errorf("RegisterArrival() before confirmation error = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.ConfirmPayment(context.Background(), res.ID); err != nil {
		t.Fatalf("ConfirmPayment() error = %v", err)
	}
	if err := svc.RegisterArrival(context.Background(), res.ID); err != nil {
		t.Errorf("RegisterArrival() error = %v", err)
	}
}

func TestSweepExpiredIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeDirectory{}, &fakeLedger{}, nil)

	q := completeQuote(t)
	res, err := svc.CreateReservation(context.Background(), q, CustomerInfo{Name: "Ana", Phone: "11999990000"})
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	// Move the clock past the payment deadline.
	store.now = func() time.Time { return res.ExpiresAt.Add(time.Minute) }

	ids, err := svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("SweepExpired() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != res.ID {
		t.Errorf("SweepExpired() = %v, want [%v]", ids, res.ID)
	}

	ids, err = svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("SweepExpired() second run error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("SweepExpired() second run = %v, want empty", ids)
	}

	// Expired is terminal: neither confirmation nor cancellation applies.
	if _, err := svc.ConfirmPayment(context.Background(), res.ID); !errors.Is(err, repository.ErrInvalidTransition) {
		t.Errorf("ConfirmPayment() on expired error = %v, want ErrInvalidTransition", err)
	}
	if err := svc.CancelReservation(context.Background(), res.ID); !errors.Is(err, repository.ErrInvalidTransition) {
		t.Errorf("CancelReservation() on expired error = %v, want ErrInvalidTransition", err)
	}
}

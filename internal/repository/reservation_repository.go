package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/marianaluz/balloon-event-booking/internal/model"
)

const mysqlTimeLayout = "2006-01-02 15:04:05"

// ReservationRepo provides data access for reservations and owns every
// lifecycle transition.  Transitions are expressed as conditional UPDATEs on
// the current status, never as blind overwrites, so a sweep racing a payment
// confirmation cannot clobber a terminal row.  All timestamps are stored in
// UTC.
type ReservationRepo struct {
	db *sql.DB

	// defaultDailyLimit seeds a daily_agenda row the first time a date
	// receives a confirmation.
	defaultDailyLimit int
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB, defaultDailyLimit int) *ReservationRepo {
	if defaultDailyLimit < 1 {
		defaultDailyLimit = 1
	}
	return &ReservationRepo{db: db, defaultDailyLimit: defaultDailyLimit}
}

// DB exposes the underlying handle for callers that need their own
// transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// Create inserts a new reservation in AWAITING_PAYMENT state and assigns its
// sequence code from the generated primary key.  The caller supplies the
// price snapshot and the expiry deadline; both are immutable afterwards.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO reservations
        (code, customer_name, phone, email, event_date, location, theme, category,
         plan, plan_cents, upsells_cents, services_cents, discount_cents, total_cents,
         payment_method, status, created_at, expires_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		"", res.CustomerName, res.Phone, res.Email,
		res.EventDate.UTC().Format("2006-01-02"), res.Location, res.Theme, res.Category,
		res.Plan, res.PlanCents, res.UpsellsCents, res.ServicesCents, res.DiscountCents, res.TotalCents,
		res.PaymentMethod, model.StatusAwaitingPayment,
		res.CreatedAt.UTC().Format(mysqlTimeLayout), res.ExpiresAt.UTC().Format(mysqlTimeLayout),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	res.Code = fmt.Sprintf("RSV-%06d", res.ID)
	res.Status = model.StatusAwaitingPayment
	if _, err := tx.ExecContext(ctx, `UPDATE reservations SET code = ? WHERE id = ?`, res.Code, res.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID loads a reservation.  Returns ErrReservationNotFound when no row
// exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectReservation+` WHERE id = ?`, id))
}

// GetByCode loads a reservation by its human-readable code.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (model.Reservation, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectReservation+` WHERE code = ?`, strings.ToUpper(strings.TrimSpace(code))))
}

const selectReservation = `SELECT id, code, customer_name, phone, email, event_date,
       location, theme, category, plan, plan_cents, upsells_cents, services_cents,
       discount_cents, total_cents, payment_method, status, arrival_at, created_at, expires_at
  FROM reservations`

type rowScanner interface{ Scan(dest ...any) error }

func (r *ReservationRepo) scanOne(row rowScanner) (model.Reservation, error) {
	var (
		res       model.Reservation
		email     sql.NullString
		arrivalAt sql.NullTime
	)
	err := row.Scan(
		&res.ID, &res.Code, &res.CustomerName, &res.Phone, &email, &res.EventDate,
		&res.Location, &res.Theme, &res.Category, &res.Plan, &res.PlanCents,
		&res.UpsellsCents, &res.ServicesCents, &res.DiscountCents, &res.TotalCents,
		&res.PaymentMethod, &res.Status, &arrivalAt, &res.CreatedAt, &res.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	if email.Valid {
		e := email.String
		res.Email = &e
	}
	if arrivalAt.Valid {
		t := arrivalAt.Time
		res.ArrivalAt = &t
	}
	return res, nil
}

// ConfirmAwaiting moves a reservation from AWAITING_PAYMENT to CONFIRMED and
// claims a slot on the daily agenda, all inside one transaction.  It returns
// ErrReservationNotFound when the id does not exist, ErrInvalidTransition
// when the reservation already left AWAITING_PAYMENT and ErrDateUnavailable
// when the event date is blocked or full.  On success the updated
// reservation is returned.
func (r *ReservationRepo) ConfirmAwaiting(ctx context.Context, id uint64) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the row first so the agenda check and the status flip observe a
	// stable state.
	res, err := r.scanOne(tx.QueryRowContext(ctx, selectReservation+` WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		return model.Reservation{}, err
	}
	if res.Status != model.StatusAwaitingPayment {
		return model.Reservation{}, ErrInvalidTransition
	}

	day := res.EventDate.UTC().Format("2006-01-02")
	// Seed the agenda row if the date has never been touched, then lock it.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO daily_agenda (date, confirmed, daily_limit, blocked) VALUES (?, 0, ?, FALSE)
         ON DUPLICATE KEY UPDATE date = date`,
		day, r.defaultDailyLimit,
	); err != nil {
		return model.Reservation{}, err
	}
	var (
		confirmed, limit int
		blocked          bool
	)
	if err := tx.QueryRowContext(ctx,
		`SELECT confirmed, daily_limit, blocked FROM daily_agenda WHERE date = ? FOR UPDATE`, day,
	).Scan(&confirmed, &limit, &blocked); err != nil {
		return model.Reservation{}, err
	}
	if blocked || confirmed >= limit {
		return model.Reservation{}, ErrDateUnavailable
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE daily_agenda SET confirmed = confirmed + 1 WHERE date = ?`, day,
	); err != nil {
		return model.Reservation{}, err
	}

	// Compare-and-swap on status even though the row is locked; belt and
	// suspenders against a future caller skipping the lock.
	result, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND status = ?`,
		model.StatusConfirmed, id, model.StatusAwaitingPayment,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return model.Reservation{}, err
	}
	if n == 0 {
		return model.Reservation{}, ErrInvalidTransition
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	res.Status = model.StatusConfirmed
	return res, nil
}

// CancelAwaiting moves a reservation from AWAITING_PAYMENT to CANCELLED via
// a conditional UPDATE.  A zero-row update on an existing reservation means
// it already reached a terminal state: ErrInvalidTransition.
func (r *ReservationRepo) CancelAwaiting(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND status = ?`,
		model.StatusCancelled, id, model.StatusAwaitingPayment,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.transitionFailure(ctx, id)
}

// MarkArrival records the logistics check-in on a CONFIRMED reservation.
// Status is not changed.  Calling it again refreshes the timestamp.
func (r *ReservationRepo) MarkArrival(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET arrival_at = UTC_TIMESTAMP() WHERE id = ? AND status = ?`,
		id, model.StatusConfirmed,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.transitionFailure(ctx, id)
}

// transitionFailure decides which sentinel to report after a conditional
// update touched zero rows.
func (r *ReservationRepo) transitionFailure(ctx context.Context, id uint64) error {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	return ErrInvalidTransition
}

// SweepExpired transitions every AWAITING_PAYMENT reservation whose deadline
// has passed to EXPIRED and returns the ids it touched.  This is the only
// code path that produces EXPIRED.  Running it twice over the same instant
// is a no-op the second time: rows already expired no longer match the
// conditional update.
func (r *ReservationRepo) SweepExpired(ctx context.Context) ([]uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM reservations
          WHERE status = ? AND expires_at <= UTC_TIMESTAMP() FOR UPDATE`,
		model.StatusAwaitingPayment,
	)
	if err != nil {
		return nil, err
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if scanErr := rows.Scan(&id); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		committed = true
		return []uint64{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+2)
	args = append(args, model.StatusExpired)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, model.StatusAwaitingPayment)
	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id IN (`+strings.Join(placeholders, ",")+`) AND status = ?`,
		args...,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return ids, nil
}

// List returns reservations for the back office, newest first, optionally
// filtered by status and by event-date range.
func (r *ReservationRepo) List(ctx context.Context, status string, from, to *time.Time) ([]model.Reservation, error) {
	q := selectReservation + ` WHERE 1=1`
	var args []any
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	if from != nil {
		q += ` AND event_date >= ?`
		args = append(args, from.UTC().Format("2006-01-02"))
	}
	if to != nil {
		q += ` AND event_date <= ?`
		args = append(args, to.UTC().Format("2006-01-02"))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var (
			res       model.Reservation
			email     sql.NullString
			arrivalAt sql.NullTime
		)
		if err := rows.Scan(
			&res.ID, &res.Code, &res.CustomerName, &res.Phone, &email, &res.EventDate,
			&res.Location, &res.Theme, &res.Category, &res.Plan, &res.PlanCents,
			&res.UpsellsCents, &res.ServicesCents, &res.DiscountCents, &res.TotalCents,
			&res.PaymentMethod, &res.Status, &arrivalAt, &res.CreatedAt, &res.ExpiresAt,
		); err != nil {
			return nil, err
		}
		if email.Valid {
			e := email.String
			res.Email = &e
		}
		if arrivalAt.Valid {
			t := arrivalAt.Time
			res.ArrivalAt = &t
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

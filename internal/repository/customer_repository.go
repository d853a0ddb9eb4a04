package repository

import (
	"context"
	"database/sql"

	"github.com/marianaluz/balloon-event-booking/internal/model"
)

// CustomerRepo maintains the customer directory.  Rows are keyed by phone
// number: the quiz never asks customers to log in, so the phone is the only
// stable identifier across bookings.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// UpsertFromReservation creates or refreshes the directory row when a
// reservation is created.  Name is always updated; a nil email never
// overwrites a stored one.
func (r *CustomerRepo) UpsertFromReservation(ctx context.Context, name, phone string, email *string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, phone, email) VALUES (?, ?, ?)
         ON DUPLICATE KEY UPDATE
           name = VALUES(name),
           email = COALESCE(VALUES(email), email)`,
		name, phone, email,
	)
	return err
}

// RecordPurchase bumps lifetime spend and purchase timestamps after a
// payment confirmation.
func (r *CustomerRepo) RecordPurchase(ctx context.Context, phone string, amountCents int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers
            SET total_spent_cents = total_spent_cents + ?,
                first_purchase_at = COALESCE(first_purchase_at, UTC_TIMESTAMP()),
                last_purchase_at = UTC_TIMESTAMP()
          WHERE phone = ?`,
		amountCents, phone,
	)
	return err
}

// GetByPhone loads a directory row.  Returns sql.ErrNoRows when the phone is
// unknown.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (model.Customer, error) {
	var (
		c     model.Customer
		email sql.NullString
		first sql.NullTime
		last  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, total_spent_cents, first_purchase_at, last_purchase_at, created_at
           FROM customers WHERE phone = ? LIMIT 1`,
		phone,
	).Scan(&c.ID, &c.Name, &c.Phone, &email, &c.TotalSpentCents, &first, &last, &c.CreatedAt)
	if err != nil {
		return model.Customer{}, err
	}
	if email.Valid {
		e := email.String
		c.Email = &e
	}
	if first.Valid {
		t := first.Time
		c.FirstPurchaseAt = &t
	}
	if last.Valid {
		t := last.Time
		c.LastPurchaseAt = &t
	}
	return c, nil
}

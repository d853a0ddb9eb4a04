package repository

import (
	"context"
	"database/sql"

	"github.com/marianaluz/balloon-event-booking/internal/model"
)

// FinanceRepo persists the money ledger.  Income rows are written by the
// reservation service on payment confirmation; expense rows come from the
// back office.  The monthly summary is aggregated on read so there is no
// cache to keep consistent.
type FinanceRepo struct {
	db *sql.DB
}

// NewFinanceRepo returns a FinanceRepo bound to the given database.
func NewFinanceRepo(db *sql.DB) *FinanceRepo { return &FinanceRepo{db: db} }

// Insert writes one ledger row and populates the generated ID.
func (r *FinanceRepo) Insert(ctx context.Context, e *model.FinancialEntry) error {
	var due, paid any
	if e.DueDate != nil {
		due = e.DueDate.UTC().Format("2006-01-02")
	}
	if e.PaidAt != nil {
		paid = e.PaidAt.UTC().Format(mysqlTimeLayout)
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO financial_entries
           (reservation_id, type, category, subcategory, description,
            amount_cents, payment_method, status, due_date, paid_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ReservationID, e.Type, e.Category, e.Subcategory, e.Description,
		e.AmountCents, e.PaymentMethod, e.Status, due, paid,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// MonthlySummary aggregates the ledger and confirmed reservations for one
// calendar month (YYYY-MM).
func (r *FinanceRepo) MonthlySummary(ctx context.Context, month string) (model.MonthlySummary, error) {
	s := model.MonthlySummary{Month: month}

	err := r.db.QueryRowContext(ctx,
		`SELECT
            COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount_cents ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN type = ? THEN amount_cents ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount_cents ELSE 0 END), 0)
         FROM financial_entries
         WHERE DATE_FORMAT(created_at, '%Y-%m') = ?`,
		model.EntryIncome, model.EntryReceived,
		model.EntryExpense,
		model.EntryIncome, model.EntryPending,
		month,
	).Scan(&s.IncomeCents, &s.ExpenseCents, &s.PendingCents)
	if err != nil {
		return model.MonthlySummary{}, err
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents

	var totalConfirmed sql.NullInt64
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
           FROM reservations
          WHERE status = ? AND DATE_FORMAT(created_at, '%Y-%m') = ?`,
		model.StatusConfirmed, month,
	).Scan(&s.Reservations, &totalConfirmed)
	if err != nil {
		return model.MonthlySummary{}, err
	}
	if s.Reservations > 0 && totalConfirmed.Valid {
		s.AvgTicketCents = totalConfirmed.Int64 / s.Reservations
	}
	return s, nil
}

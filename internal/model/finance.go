package model

import "time"

// Financial entry types and statuses.  Income rows are written automatically
// when payments are confirmed; expense rows come from the back office.
const (
	EntryIncome  = "INCOME"
	EntryExpense = "EXPENSE"

	EntryReceived = "RECEIVED"
	EntryPending  = "PENDING"
)

// FinancialEntry is one row of the money ledger.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – originating reservation, nil for manual entries.
//  Type          – INCOME or EXPENSE.
//  Category      – high-level grouping (e.g. "reserva", "material").
//  Subcategory   – optional finer grouping for manual entries.
//  Description   – free text shown in the back office.
//  AmountCents   – always positive; Type carries the sign.
//  PaymentMethod – how the money moved.
//  Status        – RECEIVED or PENDING.
//  DueDate       – when a pending amount is expected.
//  PaidAt        – when the money actually moved, nil while pending.
//  CreatedAt     – row creation timestamp.
type FinancialEntry struct {
	ID            uint64     // financial_entries.id
	ReservationID *uint64    // financial_entries.reservation_id (nullable)
	Type          string     // financial_entries.type
	Category      string     // financial_entries.category
	Subcategory   string     // financial_entries.subcategory
	Description   string     // financial_entries.description
	AmountCents   int64      // financial_entries.amount_cents
	PaymentMethod string     // financial_entries.payment_method
	Status        string     // financial_entries.status
	DueDate       *time.Time // financial_entries.due_date (nullable)
	PaidAt        *time.Time // financial_entries.paid_at (nullable)
	CreatedAt     time.Time  // financial_entries.created_at
}

// MonthlySummary aggregates the ledger for one calendar month.  Computed on
// read; nothing is cached.
type MonthlySummary struct {
	Month          string `json:"month"` // YYYY-MM
	IncomeCents    int64  `json:"income_cents"`
	ExpenseCents   int64  `json:"expense_cents"`
	PendingCents   int64  `json:"pending_cents"`
	BalanceCents   int64  `json:"balance_cents"`
	Reservations   int64  `json:"reservations"`
	AvgTicketCents int64  `json:"avg_ticket_cents"`
}

package model

import "time"

// Customer is the back-office customer directory, keyed by phone number.
// Rows are upserted when a reservation is created and enriched when a
// payment is confirmed.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – last known customer name.
//  Phone           – unique phone number.
//  Email           – optional contact email.
//  TotalSpentCents – lifetime confirmed revenue from this customer.
//  FirstPurchaseAt – first confirmed payment, nil until one lands.
//  LastPurchaseAt  – most recent confirmed payment.
//  CreatedAt       – directory row creation timestamp.
type Customer struct {
	ID              uint64     // customers.id
	Name            string     // customers.name
	Phone           string     // customers.phone
	Email           *string    // customers.email (nullable)
	TotalSpentCents int64      // customers.total_spent_cents
	FirstPurchaseAt *time.Time // customers.first_purchase_at (nullable)
	LastPurchaseAt  *time.Time // customers.last_purchase_at (nullable)
	CreatedAt       time.Time  // customers.created_at
}

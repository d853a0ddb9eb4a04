// Package catalog holds the price list the booking flow sells from: decoration
// plans, optional upsells and logistics services.  Prices are configuration
// data owned by the business, not by this service; reservations snapshot the
// values in effect at creation time, so later catalog edits never change an
// existing reservation's totals.
package catalog

import (
	"os"
	"strconv"
)

// All amounts are integer cents.
type Catalog struct {
	Plans map[string]int64 // plan name -> base price

	// Upsell unit prices.  LED panels are quantity-priced; the rest are flat.
	GarlandCents int64
	LEDUnitCents int64
	TableCents   int64

	// Service prices.  Self-service costs nothing.  The full-convenience
	// bundle replaces delivery+setup+pickup at a flat price.
	DeliveryCents   int64
	SetupCents      int64
	PickupCents     int64
	FullBundleCents int64
}

// Plan names offered by the quiz.
const (
	PlanEssencial = "ESSENCIAL"
	PlanPremium   = "PREMIUM"
)

// Default returns the built-in price list.
func Default() Catalog {
	return Catalog{
		Plans: map[string]int64{
			PlanEssencial: 8900,
			PlanPremium:   15900,
		},
		GarlandCents:    4000,
		LEDUnitCents:    3500,
		TableCents:      3000,
		DeliveryCents:   4000,
		SetupCents:      4000,
		PickupCents:     4000,
		FullBundleCents: 12000,
	}
}

// Load returns the default catalog with any CATALOG_* environment overrides
// applied.  Values are whole cents, e.g. CATALOG_PLAN_PREMIUM=15900.
func Load() Catalog {
	c := Default()
	c.Plans[PlanEssencial] = envCents("CATALOG_PLAN_ESSENCIAL", c.Plans[PlanEssencial])
	c.Plans[PlanPremium] = envCents("CATALOG_PLAN_PREMIUM", c.Plans[PlanPremium])
	c.GarlandCents = envCents("CATALOG_UPSELL_GARLAND", c.GarlandCents)
	c.LEDUnitCents = envCents("CATALOG_UPSELL_LED_UNIT", c.LEDUnitCents)
	c.TableCents = envCents("CATALOG_UPSELL_TABLE", c.TableCents)
	c.DeliveryCents = envCents("CATALOG_SERVICE_DELIVERY", c.DeliveryCents)
	c.SetupCents = envCents("CATALOG_SERVICE_SETUP", c.SetupCents)
	c.PickupCents = envCents("CATALOG_SERVICE_PICKUP", c.PickupCents)
	c.FullBundleCents = envCents("CATALOG_SERVICE_FULL_BUNDLE", c.FullBundleCents)
	return c
}

// PlanPrice looks up a plan's base price.  The boolean reports whether the
// plan exists.
func (c Catalog) PlanPrice(name string) (int64, bool) {
	p, ok := c.Plans[name]
	return p, ok
}

func envCents(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
		return n
	}
	return def
}

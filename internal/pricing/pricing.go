// Package pricing computes a quote's price breakdown from the catalog and the
// customer's current selections.  ComputePricing is a pure function: callers
// must re-run it after every mutation of its inputs instead of caching the
// result across mutations.
package pricing

import (
	"errors"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
)

// ErrUnknownPlan is returned when the selected plan is not in the catalog.
var ErrUnknownPlan = errors.New("unknown plan")

// ErrInvalidQuantity is returned for a negative upsell quantity.  Quantities
// are rejected rather than clamped so callers always see the bad input.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Upsells captures the optional decoration add-ons.  LEDUnits is a count;
// the other two are single items.
type Upsells struct {
	Garland  bool `json:"garland"`
	LEDUnits int  `json:"led_units"`
	Table    bool `json:"table"`
}

// ServiceKind tags the logistics choice.  The umbrella choices (self-service
// and full bundle) exclude everything else; individual services can be
// combined with each other only.
type ServiceKind string

const (
	ServiceNone        ServiceKind = "NONE"
	ServiceSelfService ServiceKind = "SELF_SERVICE"
	ServiceIndividual  ServiceKind = "INDIVIDUAL"
	ServiceFullBundle  ServiceKind = "FULL_BUNDLE"
)

// ServiceSelection is the tagged logistics choice.  The Delivery/Setup/Pickup
// flags are meaningful only when Kind is ServiceIndividual; constructors and
// the quote setters keep them false otherwise, which makes the illegal flag
// combinations unrepresentable.
type ServiceSelection struct {
	Kind     ServiceKind `json:"kind"`
	Delivery bool        `json:"delivery"`
	Setup    bool        `json:"setup"`
	Pickup   bool        `json:"pickup"`
}

// NoServices returns the empty selection.
func NoServices() ServiceSelection { return ServiceSelection{Kind: ServiceNone} }

// Breakdown is the computed price snapshot, all values in integer cents.
// DiscountCents exists for row fidelity with stored reservations but no code
// path currently sets it; totals are plan + upsells + services.
type Breakdown struct {
	PlanCents     int64 `json:"plan_cents"`
	UpsellsCents  int64 `json:"upsells_cents"`
	ServicesCents int64 `json:"services_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// ComputePricing prices the given selections against the catalog.  It fails
// with ErrUnknownPlan when the plan name has no catalog entry and with
// ErrInvalidQuantity when LEDUnits is negative.
func ComputePricing(cat catalog.Catalog, planName string, ups Upsells, svc ServiceSelection) (Breakdown, error) {
	planCents, ok := cat.PlanPrice(planName)
	if !ok {
		return Breakdown{}, ErrUnknownPlan
	}
	upsellsCents, err := UpsellsPrice(cat, ups)
	if err != nil {
		return Breakdown{}, err
	}
	b := Breakdown{
		PlanCents:     planCents,
		UpsellsCents:  upsellsCents,
		ServicesCents: ServicesPrice(cat, svc),
	}
	b.TotalCents = b.PlanCents + b.UpsellsCents + b.ServicesCents - b.DiscountCents
	return b, nil
}

// UpsellsPrice sums the selected upsells.  Boolean upsells count once, LED
// panels by quantity.
func UpsellsPrice(cat catalog.Catalog, ups Upsells) (int64, error) {
	if ups.LEDUnits < 0 {
		return 0, ErrInvalidQuantity
	}
	var cents int64
	if ups.Garland {
		cents += cat.GarlandCents
	}
	cents += int64(ups.LEDUnits) * cat.LEDUnitCents
	if ups.Table {
		cents += cat.TableCents
	}
	return cents, nil
}

// ServicesPrice prices the logistics choice.  The full bundle is a flat price
// regardless of anything else; self-service and no selection cost nothing.
func ServicesPrice(cat catalog.Catalog, svc ServiceSelection) int64 {
	switch svc.Kind {
	case ServiceFullBundle:
		return cat.FullBundleCents
	case ServiceIndividual:
		var cents int64
		if svc.Delivery {
			cents += cat.DeliveryCents
		}
		if svc.Setup {
			cents += cat.SetupCents
		}
		if svc.Pickup {
			cents += cat.PickupCents
		}
		return cents
	default:
		return 0
	}
}

// Package quote implements the draft a customer builds while walking through
// the quiz: event details, plan, upsells, services and payment split.  The
// aggregate exposes a narrow setter API; every setter that touches a priced
// field recomputes the breakdown before returning, so callers never observe a
// quote whose selections and pricing disagree.
package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
	"github.com/marianaluz/balloon-event-booking/internal/pricing"
)

// ErrIncompleteQuote is returned by Validate when required fields are unset.
// The wrapped message lists what is missing.
var ErrIncompleteQuote = errors.New("incomplete quote")

// ErrInvalidField covers malformed field values: bad dates, too-short text,
// unknown toggle keys and unknown payment splits.
var ErrInvalidField = errors.New("invalid field")

// PaymentSplit is how the customer chose to pay.  The wire values match the
// strings stored on reservations.
type PaymentSplit string

const (
	SplitUnset       PaymentSplit = ""
	SplitHalfHalf    PaymentSplit = "50/50"
	SplitFullUpfront PaymentSplit = "100"
)

// Upsell toggle keys accepted by ToggleUpsell.
const (
	UpsellGarland = "garland"
	UpsellLED     = "led"
	UpsellTable   = "table"
)

// Service toggle keys accepted by ToggleService.
const (
	ServiceSelfService = "self_service"
	ServiceDelivery    = "delivery"
	ServiceSetup       = "setup"
	ServicePickup      = "pickup"
	ServiceFullBundle  = "full_bundle"
)

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02"

// Quote is the session-scoped draft.  Zero value is not usable; call New.
type Quote struct {
	CustomerName string                   `json:"customer_name"`
	EventType    string                   `json:"event_type"`
	Theme        string                   `json:"theme"`
	EventDate    string                   `json:"event_date"` // DateLayout, empty until set
	Location     string                   `json:"location"`
	PlanName     string                   `json:"plan"`
	Upsells      pricing.Upsells          `json:"upsells"`
	Services     pricing.ServiceSelection `json:"services"`
	PaymentSplit PaymentSplit             `json:"payment_split"`
	Pricing      pricing.Breakdown        `json:"pricing"`
}

// New returns an empty quote with all defaults.
func New() *Quote {
	return &Quote{Services: pricing.NoServices()}
}

// Reset restores every field to its default.
func (q *Quote) Reset() { *q = *New() }

// SetCustomerName records the customer's name; not priced, not required.
func (q *Quote) SetCustomerName(name string) { q.CustomerName = strings.TrimSpace(name) }

// SetEventType records the event category (children's birthday, baby reveal...).
func (q *Quote) SetEventType(t string) { q.EventType = strings.TrimSpace(t) }

// SetTheme records the decoration theme.  Custom themes must have at least
// three characters.
func (q *Quote) SetTheme(theme string) error {
	theme = strings.TrimSpace(theme)
	if theme != "" && len([]rune(theme)) < 3 {
		return fmt.Errorf("%w: theme must have at least 3 characters", ErrInvalidField)
	}
	q.Theme = theme
	return nil
}

// SetEventDate accepts a DateLayout date that is today or later.
func (q *Quote) SetEventDate(s string) error {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: event date must be YYYY-MM-DD", ErrInvalidField)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if d.Before(today) {
		return fmt.Errorf("%w: event date must be today or later", ErrInvalidField)
	}
	q.EventDate = d.Format(DateLayout)
	return nil
}

// SetLocation records the event address; at least five characters.
func (q *Quote) SetLocation(loc string) error {
	loc = strings.TrimSpace(loc)
	if len([]rune(loc)) < 5 {
		return fmt.Errorf("%w: location must have at least 5 characters", ErrInvalidField)
	}
	q.Location = loc
	return nil
}

// SelectPlan picks a plan from the catalog and reprices the quote.  Selecting
// the plan already chosen is a no-op on price but still recomputes.
func (q *Quote) SelectPlan(cat catalog.Catalog, name string) error {
	name = strings.ToUpper(strings.TrimSpace(name))
	if _, ok := cat.PlanPrice(name); !ok {
		return pricing.ErrUnknownPlan
	}
	prev := q.PlanName
	q.PlanName = name
	if err := q.recompute(cat); err != nil {
		q.PlanName = prev
		return err
	}
	return nil
}

// SetLEDUnits sets the LED panel quantity.  Negative quantities are rejected,
// never clamped.
func (q *Quote) SetLEDUnits(cat catalog.Catalog, n int) error {
	if n < 0 {
		return pricing.ErrInvalidQuantity
	}
	prev := q.Upsells.LEDUnits
	q.Upsells.LEDUnits = n
	if err := q.recompute(cat); err != nil {
		q.Upsells.LEDUnits = prev
		return err
	}
	return nil
}

// ToggleUpsell flips a boolean upsell on or off.  Toggling "led" switches the
// quantity between 0 and 1, matching the checkout checkbox.
func (q *Quote) ToggleUpsell(cat catalog.Catalog, key string) error {
	prev := q.Upsells
	switch key {
	case UpsellGarland:
		q.Upsells.Garland = !q.Upsells.Garland
	case UpsellLED:
		if q.Upsells.LEDUnits > 0 {
			q.Upsells.LEDUnits = 0
		} else {
			q.Upsells.LEDUnits = 1
		}
	case UpsellTable:
		q.Upsells.Table = !q.Upsells.Table
	default:
		return fmt.Errorf("%w: unknown upsell %q", ErrInvalidField, key)
	}
	if err := q.recompute(cat); err != nil {
		q.Upsells = prev
		return err
	}
	return nil
}

// ToggleService flips a logistics choice, applying the mutual-exclusion rules
// in the same mutation: self-service and the full bundle are umbrella choices
// that clear everything else, and picking any individual service clears the
// umbrellas.  Pricing is recomputed before the call returns.
func (q *Quote) ToggleService(cat catalog.Catalog, key string) error {
	prev := q.Services
	switch key {
	case ServiceSelfService:
		if q.Services.Kind == pricing.ServiceSelfService {
			q.Services = pricing.NoServices()
		} else {
			q.Services = pricing.ServiceSelection{Kind: pricing.ServiceSelfService}
		}
	case ServiceFullBundle:
		if q.Services.Kind == pricing.ServiceFullBundle {
			q.Services = pricing.NoServices()
		} else {
			q.Services = pricing.ServiceSelection{Kind: pricing.ServiceFullBundle}
		}
	case ServiceDelivery, ServiceSetup, ServicePickup:
		next := q.Services
		if next.Kind != pricing.ServiceIndividual {
			next = pricing.ServiceSelection{Kind: pricing.ServiceIndividual}
		}
		switch key {
		case ServiceDelivery:
			next.Delivery = !next.Delivery
		case ServiceSetup:
			next.Setup = !next.Setup
		case ServicePickup:
			next.Pickup = !next.Pickup
		}
		if !next.Delivery && !next.Setup && !next.Pickup {
			next = pricing.NoServices()
		}
		q.Services = next
	default:
		return fmt.Errorf("%w: unknown service %q", ErrInvalidField, key)
	}
	if err := q.recompute(cat); err != nil {
		q.Services = prev
		return err
	}
	return nil
}

// SetPaymentSplit records how the customer wants to pay.
func (q *Quote) SetPaymentSplit(v PaymentSplit) error {
	if v != SplitHalfHalf && v != SplitFullUpfront {
		return fmt.Errorf("%w: payment split must be %q or %q", ErrInvalidField, SplitHalfHalf, SplitFullUpfront)
	}
	q.PaymentSplit = v
	return nil
}

// AmountDueTodayCents is what the customer pays at checkout: half the total
// (rounded down) once the 50/50 split is chosen, the full total otherwise.
// While the split is still unset the quiz must not advertise a discount, so
// the full total is shown.
func (q *Quote) AmountDueTodayCents() int64 {
	if q.PaymentSplit == SplitHalfHalf {
		return q.Pricing.TotalCents / 2
	}
	return q.Pricing.TotalCents
}

// Validate reports whether the quote can be submitted as a reservation.  It
// returns ErrIncompleteQuote naming every missing field.
func (q *Quote) Validate() error {
	var missing []string
	if q.EventType == "" {
		missing = append(missing, "event_type")
	}
	if q.Theme == "" {
		missing = append(missing, "theme")
	}
	if q.EventDate == "" {
		missing = append(missing, "event_date")
	}
	if q.Location == "" {
		missing = append(missing, "location")
	}
	if q.PlanName == "" {
		missing = append(missing, "plan")
	}
	if q.PaymentSplit == SplitUnset {
		missing = append(missing, "payment_split")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteQuote, strings.Join(missing, ", "))
	}
	return nil
}

// recompute refreshes Pricing from the current selections.  Before a plan is
// chosen the plan price is zero but upsells and services are still priced, so
// the quiz can show a running subtotal.
func (q *Quote) recompute(cat catalog.Catalog) error {
	if q.PlanName == "" {
		upsells, err := pricing.UpsellsPrice(cat, q.Upsells)
		if err != nil {
			return err
		}
		b := pricing.Breakdown{
			UpsellsCents:  upsells,
			ServicesCents: pricing.ServicesPrice(cat, q.Services),
		}
		b.TotalCents = b.PlanCents + b.UpsellsCents + b.ServicesCents - b.DiscountCents
		q.Pricing = b
		return nil
	}
	b, err := pricing.ComputePricing(cat, q.PlanName, q.Upsells, q.Services)
	if err != nil {
		return err
	}
	q.Pricing = b
	return nil
}

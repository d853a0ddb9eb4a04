package quote

import (
	"errors"
	"testing"
	"time"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
	"github.com/marianaluz/balloon-event-booking/internal/pricing"
)

func futureDate() string {
	return time.Now().UTC().Add(72 * time.Hour).Format(DateLayout)
}

// completeQuote returns a quote that passes Validate.
func completeQuote(t *testing.T, cat catalog.Catalog) *Quote {
	t.Helper()
	q := New()
	q.SetEventType("children_birthday")
	if err := q.SetTheme("dinosaurs"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if err := q.SetEventDate(futureDate()); err != nil {
		t.Fatalf("SetEventDate() error = %v", err)
	}
	if err := q.SetLocation("Rua das Flores 123"); err != nil {
		t.Fatalf("SetLocation() error = %v", err)
	}
	if err := q.SelectPlan(cat, catalog.PlanEssencial); err != nil {
		t.Fatalf("SelectPlan() error = %v", err)
	}
	if err := q.SetPaymentSplit(SplitHalfHalf); err != nil {
		t.Fatalf("SetPaymentSplit() error = %v", err)
	}
	return q
}

func TestSelectPlanRepricesQuote(t *testing.T) {
	cat := catalog.Default()
	q := New()

	if err := q.SelectPlan(cat, catalog.PlanEssencial); err != nil {
		t.Fatalf("SelectPlan() error = %v", err)
	}
	if q.Pricing.TotalCents != 8900 {
		t.Errorf("TotalCents = %v, want 8900", q.Pricing.TotalCents)
	}

	if err := q.SelectPlan(cat, catalog.PlanPremium); err != nil {
		t.Fatalf("SelectPlan() error = %v", err)
	}
	if q.Pricing.TotalCents != 15900 {
		t.Errorf("TotalCents after switching plans = %v, want 15900", q.Pricing.TotalCents)
	}
}

func TestSelectPlanUnknownLeavesQuoteUntouched(t *testing.T) {
	cat := catalog.Default()
	q := New()
	if err := q.SelectPlan(cat, catalog.PlanEssencial); err != nil {
		t.Fatalf("SelectPlan() error = %v", err)
	}

	err := q.SelectPlan(cat, "DELUXE")
	if !errors.Is(err, pricing.ErrUnknownPlan) {
		t.Fatalf("SelectPlan() error = %v, want ErrUnknownPlan", err)
	}
	if q.PlanName != catalog.PlanEssencial {
		t.Errorf("PlanName = %v, want %v", q.PlanName, catalog.PlanEssencial)
	}
	if q.Pricing.TotalCents != 8900 {
		t.Errorf("TotalCents = %v, want 8900", q.Pricing.TotalCents)
	}
}

func TestUpsellsPricedBeforePlanSelection(t *testing.T) {
	cat := catalog.Default()
	q := New()

	if err := q.ToggleUpsell(cat, UpsellGarland); err != nil {
		t.Fatalf("ToggleUpsell() error = %v", err)
	}
	if q.Pricing.UpsellsCents != 4000 {
		t.Errorf("UpsellsCents = %v, want 4000", q.Pricing.UpsellsCents)
	}
	if q.Pricing.PlanCents != 0 {
		t.Errorf("PlanCents = %v, want 0 before plan selection", q.Pricing.PlanCents)
	}
	if q.Pricing.TotalCents != 4000 {
		t.Errorf("TotalCents = %v, want 4000", q.Pricing.TotalCents)
	}
}

func TestSetLEDUnitsRejectsNegative(t *testing.T) {
	cat := catalog.Default()
	q := New()
	if err := q.SetLEDUnits(cat, 2); err != nil {
		t.Fatalf("SetLEDUnits(2) error = %v", err)
	}

	err := q.SetLEDUnits(cat, -1)
	if !errors.Is(err, pricing.ErrInvalidQuantity) {
		t.Fatalf("SetLEDUnits(-1) error = %v, want ErrInvalidQuantity", err)
	}
	// Quantity and pricing must be untouched after the rejected mutation.
	if q.Upsells.LEDUnits != 2 {
		t.Errorf("LEDUnits = %v, want 2", q.Upsells.LEDUnits)
	}
	if q.Pricing.UpsellsCents != 7000 {
		t.Errorf("UpsellsCents = %v, want 7000", q.Pricing.UpsellsCents)
	}
}

func TestToggleLEDSwitchesBetweenZeroAndOne(t *testing.T) {
	cat := catalog.Default()
	q := New()

	if err := q.ToggleUpsell(cat, UpsellLED); err != nil {
		t.Fatalf("ToggleUpsell(led) error = %v", err)
	}
	if q.Upsells.LEDUnits != 1 {
		t.Errorf("LEDUnits = %v, want 1", q.Upsells.LEDUnits)
	}

	if err := q.SetLEDUnits(cat, 4); err != nil {
		t.Fatalf("SetLEDUnits(4) error = %v", err)
	}
	if err := q.ToggleUpsell(cat, UpsellLED); err != nil {
		t.Fatalf("ToggleUpsell(led) error = %v", err)
	}
	if q.Upsells.LEDUnits != 0 {
		t.Errorf("LEDUnits after toggling off = %v, want 0", q.Upsells.LEDUnits)
	}
}

func TestToggleServiceMutualExclusion(t *testing.T) {
	cat := catalog.Default()

	t.Run("self service clears individual services", func(t *testing.T) {
		q := New()
		if err := q.ToggleService(cat, ServiceDelivery); err != nil {
			t.Fatalf("ToggleService(delivery) error = %v", err)
		}
		if err := q.ToggleService(cat, ServiceSetup); err != nil {
			t.Fatalf("ToggleService(setup) error = %v", err)
		}
		if err := q.ToggleService(cat, ServiceSelfService); err != nil {
			t.Fatalf("ToggleService(self_service) error = %v", err)
		}
		if q.Services.Kind != pricing.ServiceSelfService {
			t.Errorf("Kind = %v, want SELF_SERVICE", q.Services.Kind)
		}
		if q.Services.Delivery || q.Services.Setup || q.Services.Pickup {
			t.Errorf("individual flags survived umbrella toggle: %+v", q.Services)
		}
		if q.Pricing.ServicesCents != 0 {
			t.Errorf("ServicesCents = %v, want 0", q.Pricing.ServicesCents)
		}
	})

	t.Run("individual service clears full bundle", func(t *testing.T) {
		q := New()
		if err := q.ToggleService(cat, ServiceFullBundle); err != nil {
			t.Fatalf("ToggleService(full_bundle) error = %v", err)
		}
		if q.Pricing.ServicesCents != 12000 {
			t.Fatalf("ServicesCents = %v, want 12000", q.Pricing.ServicesCents)
		}
		if err := q.ToggleService(cat, ServicePickup); err != nil {
			t.Fatalf("ToggleService(pickup) error = %v", err)
		}
		if q.Services.Kind != pricing.ServiceIndividual {
			t.Errorf("Kind = %v, want INDIVIDUAL", q.Services.Kind)
		}
		if !q.Services.Pickup || q.Services.Delivery || q.Services.Setup {
			t.Errorf("flags = %+v, want pickup only", q.Services)
		}
		if q.Pricing.ServicesCents != 4000 {
			t.Errorf("ServicesCents = %v, want 4000", q.Pricing.ServicesCents)
		}
	})

	t.Run("untoggling last individual service returns to none", func(t *testing.T) {
		q := New()
		if err := q.ToggleService(cat, ServiceDelivery); err != nil {
			t.Fatalf("ToggleService(delivery) error = %v", err)
		}
		if err := q.ToggleService(cat, ServiceDelivery); err != nil {
			t.Fatalf("ToggleService(delivery) error = %v", err)
		}
		if q.Services.Kind != pricing.ServiceNone {
			t.Errorf("Kind = %v, want NONE", q.Services.Kind)
		}
	})

	t.Run("umbrella toggles off to none", func(t *testing.T) {
		q := New()
		if err := q.ToggleService(cat, ServiceSelfService); err != nil {
			t.Fatalf("ToggleService(self_service) error = %v", err)
		}
		if err := q.ToggleService(cat, ServiceSelfService); err != nil {
			t.Fatalf("ToggleService(self_service) error = %v", err)
		}
		if q.Services.Kind != pricing.ServiceNone {
			t.Errorf("Kind = %v, want NONE", q.Services.Kind)
		}
	})
}

func TestSetEventDateRejectsPast(t *testing.T) {
	q := New()
	past := time.Now().UTC().Add(-48 * time.Hour).Format(DateLayout)
	if err := q.SetEventDate(past); !errors.Is(err, ErrInvalidField) {
		t.Errorf("SetEventDate(past) error = %v, want ErrInvalidField", err)
	}
	if err := q.SetEventDate("31/12/2026"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("SetEventDate(malformed) error = %v, want ErrInvalidField", err)
	}
}

func TestValidateListsMissingFields(t *testing.T) {
	cat := catalog.Default()

	q := New()
	err := q.Validate()
	if !errors.Is(err, ErrIncompleteQuote) {
		t.Fatalf("Validate() error = %v, want ErrIncompleteQuote", err)
	}

	q = completeQuote(t, cat)
	if err := q.Validate(); err != nil {
		t.Errorf("Validate() on complete quote error = %v", err)
	}
}

func TestAmountDueToday(t *testing.T) {
	cat := catalog.Default()
	q := completeQuote(t, cat)

	// 50/50 split pays half, rounded down.
	if got := q.AmountDueTodayCents(); got != q.Pricing.TotalCents/2 {
		t.Errorf("AmountDueTodayCents() = %v, want %v", got, q.Pricing.TotalCents/2)
	}

	if err := q.SetPaymentSplit(SplitFullUpfront); err != nil {
		t.Fatalf("SetPaymentSplit() error = %v", err)
	}
	if got := q.AmountDueTodayCents(); got != q.Pricing.TotalCents {
		t.Errorf("AmountDueTodayCents() = %v, want %v", got, q.Pricing.TotalCents)
	}
}

func TestAmountDueTodayBeforeSplitSelection(t *testing.T) {
	cat := catalog.Default()
	q := New()
	if err := q.SelectPlan(cat, catalog.PlanPremium); err != nil {
		t.Fatalf("SelectPlan() error = %v", err)
	}

	// No split chosen yet: never show a half-payment amount.
	if got := q.AmountDueTodayCents(); got != q.Pricing.TotalCents {
		t.Errorf("AmountDueTodayCents() before split = %v, want %v", got, q.Pricing.TotalCents)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	cat := catalog.Default()
	q := completeQuote(t, cat)
	q.Reset()

	if q.PlanName != "" || q.EventDate != "" || q.PaymentSplit != SplitUnset {
		t.Errorf("Reset() left fields set: %+v", q)
	}
	if q.Pricing.TotalCents != 0 {
		t.Errorf("TotalCents after reset = %v, want 0", q.Pricing.TotalCents)
	}
	if q.Services.Kind != pricing.ServiceNone {
		t.Errorf("Services.Kind after reset = %v, want NONE", q.Services.Kind)
	}
}

package catalog

import "testing"

func TestDefaultPrices(t *testing.T) {
	c := Default()

	if p, ok := c.PlanPrice(PlanEssencial); !ok || p != 8900 {
		t.Errorf("PlanPrice(ESSENCIAL) = %v, %v; want 8900, true", p, ok)
	}
	if p, ok := c.PlanPrice(PlanPremium); !ok || p != 15900 {
		t.Errorf("PlanPrice(PREMIUM) = %v, %v; want 15900, true", p, ok)
	}
	if _, ok := c.PlanPrice("DELUXE"); ok {
		t.Error("PlanPrice(DELUXE) ok = true, want false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_PLAN_PREMIUM", "19900")
	t.Setenv("CATALOG_SERVICE_FULL_BUNDLE", "15000")
	t.Setenv("CATALOG_UPSELL_LED_UNIT", "not-a-number")

	c := Load()
	if p, _ := c.PlanPrice(PlanPremium); p != 19900 {
		t.Errorf("PlanPrice(PREMIUM) = %v, want 19900", p)
	}
	if c.FullBundleCents != 15000 {
		t.Errorf("FullBundleCents = %v, want 15000", c.FullBundleCents)
	}
	// Malformed values keep the default.
	if c.LEDUnitCents != 3500 {
		t.Errorf("LEDUnitCents = %v, want 3500", c.LEDUnitCents)
	}
}
